package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/store"
)

// NewBackend selects the [Backend] implementation by cfg.Backend.Mode.
// storage is only used by the local backend.
func NewBackend(ctx context.Context, cfg *config.ClientConfig, storage store.Storage, logger *logger.Logger) (Backend, error) {
	switch cfg.Backend.Mode {
	case config.BackendHTTP:
		logger.Debug().Str("func", "NewBackend").Str("address", cfg.Backend.HTTPAddress).Msg("using http backend")
		return NewHTTPBackend(cfg.Backend, logger)
	case config.BackendLocal:
		logger.Debug().Str("func", "NewBackend").Msg("using local backend")
		return NewLocalBackend(ctx, storage, cfg.App, logger)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", config.ErrInvalidBackendConfigs, cfg.Backend.Mode)
	}
}
