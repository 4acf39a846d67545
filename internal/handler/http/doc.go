// Package http implements the development API server: the six account and
// client endpoints the HTTP backend of the client talks to.
//
// Requests are delegated to an [adapter.Backend], in practice the local
// backend, so the server speaks exactly the wire contract the client
// expects. Tracing, access logging and bearer token extraction are handled
// here by middleware.
package http
