package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
)

var errorStatusMap = map[error]int{
	adapter.ErrInvalidCredentials: http.StatusUnauthorized,
	adapter.ErrEmailInUse:         http.StatusConflict,
	adapter.ErrInvalidToken:       http.StatusUnauthorized,
	adapter.ErrUnauthenticated:    http.StatusUnauthorized,
	adapter.ErrNetwork:            http.StatusBadGateway,
	adapter.ErrUnexpected:         http.StatusInternalServerError,
}

// statusFromError returns the response status for a backend failure. An
// unexpected failure with a specific message, such as an email collision on
// profile update, was caused by the request and is reported as 400 so that
// the message reaches the client.
func statusFromError(err error) int {
	kind := adapter.Kind(err)
	status, ok := errorStatusMap[kind]
	if !ok {
		return http.StatusInternalServerError
	}
	if errors.Is(kind, adapter.ErrUnexpected) && adapter.UserMessage(err) != adapter.DefaultMessage(adapter.ErrUnexpected) {
		return http.StatusBadRequest
	}
	return status
}

// writeBackendError logs err and writes its user message with the mapped
// status. Validation failures answer 400 with the field message.
func writeBackendError(w http.ResponseWriter, log *logger.Logger, err error) {
	var invalid *validationError
	if errors.As(err, &invalid) {
		log.Debug().Err(err).Msg("request body rejected")
		utils.WriteError(w, invalid.Message(), http.StatusBadRequest)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("backend failure")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	utils.WriteError(w, adapter.UserMessage(err), status)
}
