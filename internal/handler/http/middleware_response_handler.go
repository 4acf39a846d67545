// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-client-desk/models"
)

// maxErrorBody bounds how much of an error response is kept for the log.
const maxErrorBody = 1 << 10

// responseWriter is a thin decorator around [http.ResponseWriter] that
// records the status code, the body size and the body of error responses
// for the access log.
//
// WriteHeader is forwarded to the underlying writer exactly once; subsequent
// calls are ignored, as documented by the [http.ResponseWriter] interface.
type responseWriter struct {
	http.ResponseWriter

	// status is zero until WriteHeader (or an implicit WriteHeader via Write)
	// is called.
	status      int
	wroteHeader bool

	// size is the running total of bytes written to the body.
	size int

	// errorBody holds the start of a 4xx/5xx body.
	errorBody []byte
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write implicitly sends 200 OK when no status was written yet.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	if w.status >= http.StatusBadRequest && len(w.errorBody) < maxErrorBody {
		w.errorBody = append(w.errorBody, b[:min(n, maxErrorBody-len(w.errorBody))]...)
	}
	return n, err
}

// errorMessage returns the message of a JSON error response, empty for
// successful responses and foreign bodies.
func (w *responseWriter) errorMessage() string {
	if len(w.errorBody) == 0 {
		return ""
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.errorBody, &resp); err != nil {
		return ""
	}
	return resp.Message
}
