package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-client-desk/internal/app"
	"github.com/MKhiriev/go-client-desk/internal/utils"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/signup", h.signup)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes carrying a bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/profile", h.profile)
		r.Put("/api/users/update", h.updateProfile)
		r.Get("/api/clients", h.listClients)
		r.Post("/api/clients", h.addClient)
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
