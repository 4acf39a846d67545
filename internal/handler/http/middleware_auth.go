package http

import (
	"net/http"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
)

// auth is an HTTP middleware that extracts the bearer token of the request.
//
// The token is stored in the request context under [utils.TokenCtxKey]; its
// verification is left to the backend, which binds it to a user. Requests
// without a usable "Authorization: Bearer <token>" header are rejected with
// 401 Unauthorized and the "You must be logged in" message.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, adapter.DefaultMessage(adapter.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		token, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			utils.WriteError(w, adapter.DefaultMessage(adapter.ErrUnauthenticated), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithToken(r.Context(), token)))
	})
}
