// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages of the development API server
// that do not come from the backend.
//
// Backend failures carry their own display message; the constants here cover
// what the server rejects before a backend call is made.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgNotFound is returned for unknown routes and for methods a route
	// does not serve.
	MsgNotFound = "Not Found"
)
