package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
)

type server struct {
	httpServer *httpServer
	address    string
	logger     *logger.Logger

	// ready receives the bound address once the listener is open.
	ready chan string
}

func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handler == nil {
		return nil, errNoHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoAddress
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		address:    cfg.HTTPAddress,
		logger:     logger,
		ready:      make(chan string, 1),
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	s.ready <- listener.Addr().String()

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", listener.Addr().String()).Msg("Launching HTTP server")
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		s.Shutdown()
		if err = <-serveErr; err != nil {
			return err
		}
		s.logger.Info().Msg("server Shutdown gracefully")
		return nil
	case err = <-serveErr:
		return err
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
