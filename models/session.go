// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is a point-in-time copy of the session state. Mutating it has no
// effect on the session it was taken from.
type Session struct {
	// User is nil when no one is logged in.
	User *User

	// Token is empty when no one is logged in.
	Token string

	// IsAuthenticated is true iff both User and Token are set.
	IsAuthenticated bool

	// IsLoading is true while a session operation is in flight.
	IsLoading bool

	// Clients holds the client records in insertion order.
	Clients []Client
}
