package models

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	// Message is a short human-readable reason suitable for display.
	Message string `json:"message"`

	// TraceID identifies the failed request in the server log.
	TraceID string `json:"trace_id,omitempty"`
}

// ProfileResponse wraps the user returned by a profile update.
type ProfileResponse struct {
	User User `json:"user"`
}
