package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-client-desk/models"
)

type operation int

const (
	opAuthenticate operation = iota
	opRegister
	opFetchProfile
	opUpdateProfile
	opListClients
	opAddClient
)

// mapHTTPError classifies a non-2xx response of op. The {"message"} body of a
// 4xx response becomes the user message; 5xx bodies are not shown.
func mapHTTPError(op operation, resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	message := serverMessage(resp.Body())
	cause := &statusError{status: status, body: strings.TrimSpace(string(resp.Body()))}
	if status >= http.StatusInternalServerError {
		message = ""
	}

	switch op {
	case opAuthenticate:
		if status == http.StatusUnauthorized {
			return newError(ErrInvalidCredentials, message, cause)
		}
	case opRegister:
		if status == http.StatusConflict ||
			(status == http.StatusBadRequest && strings.Contains(strings.ToLower(message), "already")) {
			return newError(ErrEmailInUse, message, cause)
		}
	case opFetchProfile:
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return newError(ErrInvalidToken, message, cause)
		}
	case opUpdateProfile, opListClients, opAddClient:
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return newError(ErrUnauthenticated, message, cause)
		}
	}

	return newError(ErrUnexpected, message, cause)
}

// mapTransportError classifies a request that produced no response at all:
// refused connection, DNS failure, timeout or cancelled context.
func mapTransportError(err error) error {
	return newError(ErrNetwork, "", err)
}

func serverMessage(body []byte) string {
	var payload models.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("http %d %s", e.status, http.StatusText(e.status))
	}
	return fmt.Sprintf("http %d: %s", e.status, e.body)
}
