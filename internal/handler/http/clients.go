package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-client-desk/internal/app"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/utils"
	"github.com/MKhiriev/go-client-desk/models"
)

func (h *Handler) listClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	token, _ := utils.GetTokenFromContext(ctx)

	clients, err := h.backend.ListClients(ctx, token)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}
	if clients == nil {
		clients = []models.Client{}
	}

	utils.WriteJSON(w, clients, http.StatusOK)
}

func (h *Handler) addClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	token, _ := utils.GetTokenFromContext(ctx)

	var newClient models.NewClient
	if err := json.NewDecoder(r.Body).Decode(&newClient); err != nil {
		log.Err(err).Msg(ErrInvalidJSON.Error())
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	client, err := h.backend.AddClient(ctx, token, newClient)
	if err != nil {
		writeBackendError(w, log, err)
		return
	}

	log.Debug().Str("client_id", client.ID).Msg("client added")
	utils.WriteJSON(w, client, http.StatusCreated)
}
