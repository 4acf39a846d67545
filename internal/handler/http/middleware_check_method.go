// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-client-desk/internal/app"
	"github.com/MKhiriev/go-client-desk/internal/utils"
)

// CheckHTTPMethod returns the handler to register with
// [chi.Mux.MethodNotAllowed].
//
// A request whose method is not registered for the matched route gets
// 404 Not Found with the JSON error body instead of chi's default
// 405 Method Not Allowed, so unsupported methods do not reveal routes. Only
// exact pattern matches against [http.Request.URL.Path] are considered.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[r.Method]; !ok {
			utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
