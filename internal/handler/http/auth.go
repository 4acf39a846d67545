package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-client-desk/internal/app"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	result, err := h.backend.Authenticate(ctx, credentials.Email, credentials.Password)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}

	log.Debug().Str("user_id", result.User.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var registration models.Registration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Err(err).Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	result, err := h.backend.Register(ctx, registration.Name, registration.Email, registration.Password)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}

	log.Debug().Str("user_id", result.User.ID).Msg("user successfully registered")
	utils.WriteJSON(w, result, http.StatusCreated)
}
