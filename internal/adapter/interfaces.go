// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the API client the session talks to.
//
// The primary abstraction is [Backend], which decouples the session from
// where accounts and client records live. Two implementations are selected at
// construction time by [NewBackend]: an HTTP/JSON client of the remote API
// ([NewHTTPBackend]) and a local fallback that keeps the same data in the
// durable key-value storage ([NewLocalBackend]).
//
// Every failure returned by a [Backend] is an [*Error] classified into one of
// the sentinel kinds defined in errors.go ([ErrInvalidCredentials],
// [ErrEmailInUse], [ErrInvalidToken], [ErrUnauthenticated], [ErrNetwork],
// [ErrUnexpected]) so that callers can use [errors.Is], and carries a
// message that can be shown to the user as is.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-client-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/backend_mock.go -package=mock

// Backend defines the six remote operations of the account and client API.
// Each call is performed exactly once; implementations never retry.
type Backend interface {
	// Authenticate exchanges credentials for a user and a session token.
	// Fails with ErrInvalidCredentials, ErrNetwork or ErrUnexpected.
	Authenticate(ctx context.Context, email, password string) (models.AuthResult, error)

	// Register creates an account and logs it in.
	// Fails with ErrEmailInUse, ErrNetwork or ErrUnexpected.
	Register(ctx context.Context, name, email, password string) (models.AuthResult, error)

	// FetchProfile returns the user the token belongs to.
	// Fails with ErrInvalidToken (empty or unrecognized token), ErrNetwork
	// or ErrUnexpected.
	FetchProfile(ctx context.Context, token string) (models.User, error)

	// UpdateProfile applies patch to the token's user and returns the
	// updated fields. Fails with ErrUnauthenticated, ErrNetwork or
	// ErrUnexpected. An empty token fails without a remote call.
	UpdateProfile(ctx context.Context, token string, patch models.UserPatch) (models.User, error)

	// ListClients returns the client records of the token's user in
	// insertion order. Fails with ErrUnauthenticated, ErrNetwork or
	// ErrUnexpected. An empty token fails without a remote call.
	ListClients(ctx context.Context, token string) ([]models.Client, error)

	// AddClient stores c under a freshly assigned unique id and returns the
	// stored record. Fails with ErrUnauthenticated, ErrNetwork or
	// ErrUnexpected. An empty token fails without a remote call.
	AddClient(ctx context.Context, token string, c models.NewClient) (models.Client, error)
}
