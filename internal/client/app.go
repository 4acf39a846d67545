package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/session"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/internal/workers"
)

// App owns the resources of one client process.
type App struct {
	cfg     *config.ClientConfig
	log     *logger.Logger
	storage store.CloseableStorage
	session *session.Store
}

// NewApp opens the storage, builds the backend selected by cfg and a session
// reporting to notifier, then restores the persisted session. A failed
// restore leaves the session logged out and is not an error.
func NewApp(ctx context.Context, cfg *config.ClientConfig, notifier session.Notifier, log *logger.Logger) (*App, error) {
	storage, err := store.NewStorage(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create storage: %w", err)
	}

	backend, err := adapter.NewBackend(ctx, cfg, storage, log)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create backend: %w", err), storage.Close())
	}

	app := &App{
		cfg:     cfg,
		log:     log,
		storage: storage,
		session: session.New(backend, storage, notifier, log),
	}

	restoreCtx, cancel := app.RequestContext(ctx)
	defer cancel()
	if err = app.session.Restore(restoreCtx); err != nil {
		log.Warn().Err(err).Msg("stored session was not restored")
	}

	return app, nil
}

// Session returns the session of the app.
func (a *App) Session() *session.Store {
	return a.session
}

// Config returns the configuration the app was built with.
func (a *App) Config() *config.ClientConfig {
	return a.cfg
}

// RequestContext derives a context bounded by the configured request
// timeout, for a single session operation.
func (a *App) RequestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.Backend.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.Backend.RequestTimeout)
}

// Run starts the background refresh of ui and blocks in ui.Run.
func (a *App) Run(ctx context.Context, ui Interactive) error {
	refresh := workers.NewPeriodicJob("clients-refresh", a.cfg.App.RefreshInterval, func(ctx context.Context) error {
		reqCtx, cancel := a.RequestContext(ctx)
		defer cancel()
		return ui.Refresh(reqCtx)
	}, a.log)

	jobs := workers.NewWorkers(refresh)
	jobs.Start(ctx)
	defer jobs.Stop()

	return ui.Run(ctx)
}

// Close releases the storage.
func (a *App) Close() error {
	return a.storage.Close()
}
