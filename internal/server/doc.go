// Package server runs the development API server.
//
// It owns the HTTP server lifecycle: startup, signal handling and graceful
// shutdown with a bounded timeout.
package server
