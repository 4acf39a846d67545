package http

import (
	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/models"
)

type Handler struct {
	backend   adapter.Backend
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(backend adapter.Backend, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		backend:   newValidationBackend(backend),
		buildInfo: buildInfo,
		logger:    logger,
	}
}
