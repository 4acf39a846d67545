package adapter

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a [Backend] matches exactly one of
// them with [errors.Is].
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNetwork            = errors.New("network error")
	ErrUnexpected         = errors.New("unexpected error")
)

var errEmptyToken = errors.New("empty token")

var defaultMessages = map[error]string{
	ErrInvalidCredentials: "Invalid email or password",
	ErrEmailInUse:         "Email already in use",
	ErrInvalidToken:       "Your session has expired, please log in again",
	ErrUnauthenticated:    "You must be logged in",
	ErrNetwork:            "No network connection or the server is unavailable",
	ErrUnexpected:         "An unexpected error occurred",
}

// Error is a classified backend failure.
//
// Kind is one of the package sentinels. Message is safe to display; when the
// backend did not provide one it is the default message of the kind. The
// technical cause, if any, is kept for logging and reachable via
// [errors.Unwrap] semantics.
type Error struct {
	Kind    error
	Message string
	cause   error
}

func newError(kind error, message string, cause error) *Error {
	if message == "" {
		message = defaultMessages[kind]
	}
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Error returns the technical description: kind plus cause.
func (e *Error) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.cause)
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

// UserMessage returns the message of err suitable for direct display. Errors
// not produced by this package get the generic unexpected-error message, so
// raw technical text never reaches the user.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return defaultMessages[ErrUnexpected]
}

// Kind returns the sentinel err is classified as, ErrUnexpected for foreign
// errors and nil for a nil err.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind
	}
	return ErrUnexpected
}

// DefaultMessage returns the message shown for kind when the backend gave
// none.
func DefaultMessage(kind error) string {
	if msg, ok := defaultMessages[kind]; ok {
		return msg
	}
	return defaultMessages[ErrUnexpected]
}
