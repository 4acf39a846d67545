package server

import "context"

// Server defines the lifecycle contract of the development API server.
type Server interface {
	// Run serves requests until ctx is done, then shuts down gracefully.
	Run(ctx context.Context) error

	// RunServer serves until SIGINT, SIGTERM or SIGQUIT is received.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
