package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-client-desk/internal/app"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	token, _ := utils.GetTokenFromContext(ctx)

	user, err := h.backend.FetchProfile(ctx, token)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	token, _ := utils.GetTokenFromContext(ctx)

	var patch models.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.backend.UpdateProfile(ctx, token, patch)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}

	utils.WriteJSON(w, models.ProfileResponse{User: user}, http.StatusOK)
}
