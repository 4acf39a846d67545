// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session holds the authentication state of client-desk: the current
// user, the session token, the loading flag and the client list of the
// session.
//
// A [Store] is constructed explicitly and passed to the presentation layer.
// It is the only writer of its state and of the persisted token. Every
// operation calls the [adapter.Backend] once, then either applies the result
// or leaves the state exactly as it was, and finally reports the outcome
// through the [Notifier] and its return value.
//
// Session-mutating operations are serialized: a second operation waits until
// the first one has returned. Reads never wait for an operation, so
// [Store.IsLoading] can be observed while a call is in flight. [Store.Logout]
// does not wait either; an operation interrupted by it discards its result
// and fails with [ErrSessionChanged].
package session

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/models"
)

// TokenKey is the storage key the session token is persisted under.
const TokenKey = "token"

var errMissingToken = errors.New("backend returned no session token")

// Store is the session state manager.
type Store struct {
	backend  adapter.Backend
	tokens   store.Storage
	notifier Notifier
	log      *logger.Logger

	// op serializes session-mutating operations.
	op sync.Mutex

	// tokenMu orders writes of the persisted token. It is never held
	// together with mu, so readers do not wait for storage.
	tokenMu sync.Mutex

	mu      sync.RWMutex
	user    *models.User
	token   string
	clients []models.Client
	loading bool
	// epoch changes on every Logout.
	epoch uint64
}

// New creates an empty, unauthenticated session. tokens is where the session
// token is persisted; a nil notifier discards notifications.
func New(backend adapter.Backend, tokens store.Storage, notifier Notifier, log *logger.Logger) *Store {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Store{
		backend:  backend,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

// User returns a copy of the current user, nil when nobody is logged in.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current session token, empty when nobody is logged in.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// IsAuthenticated reports whether both a user and a token are set.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user != nil && s.token != ""
}

// IsLoading reports whether an operation is in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Clients returns a copy of the client list in insertion order.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.clients)
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Session{
		Token:           s.token,
		IsAuthenticated: s.user != nil && s.token != "",
		IsLoading:       s.loading,
		Clients:         slices.Clone(s.clients),
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// begin waits for the running operation to finish, marks the session as
// loading and returns the current epoch. end must be deferred right away.
func (s *Store) begin() (epoch uint64, end func()) {
	s.op.Lock()

	s.mu.Lock()
	s.loading = true
	epoch = s.epoch
	s.mu.Unlock()

	return epoch, func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()

		s.op.Unlock()
	}
}

// apply runs mutate under the state lock unless the session was logged out
// since epoch.
func (s *Store) apply(epoch uint64, mutate func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return ErrSessionChanged
	}
	mutate()
	return nil
}

func (s *Store) notify(ctx context.Context, title, description string, variant models.NotificationVariant) {
	s.notifier.Notify(ctx, models.Notification{
		Title:       title,
		Description: description,
		Variant:     variant,
	})
}

// fail logs the technical cause of a failed operation, notifies the user and
// returns the *Error for op.
func (s *Store) fail(ctx context.Context, op, title string, err error) error {
	msg := adapter.UserMessage(err)
	if errors.Is(err, ErrSessionChanged) {
		msg = msgSessionChanged
	}
	return s.failWith(ctx, op, title, msg, err)
}

func (s *Store) failWith(ctx context.Context, op, title, msg string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg("session operation failed")
	s.notify(ctx, title, msg, models.NotificationDestructive)

	return &Error{Op: op, Message: msg, Err: err}
}

// current reports whether no Logout happened since epoch.
func (s *Store) current(epoch uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.epoch == epoch
}

// persistToken stores token unless the session was logged out since epoch,
// in which case the Logout has already removed it or is about to.
func (s *Store) persistToken(ctx context.Context, epoch uint64, token string) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if !s.current(epoch) {
		return
	}
	if err := s.tokens.Set(ctx, TokenKey, token); err != nil {
		s.log.Warn().Err(err).Msg("session token was not persisted")
	}
}

// removeToken deletes the stored token unless the session was logged out
// since epoch.
func (s *Store) removeToken(ctx context.Context, epoch uint64) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if !s.current(epoch) {
		return
	}
	if err := s.tokens.Remove(ctx, TokenKey); err != nil {
		s.log.Warn().Err(err).Msg("session token was not removed from storage")
	}
}

// sessionToken returns the token for an operation that needs one, or a
// failure carrying adapter.ErrUnauthenticated.
func (s *Store) sessionToken(ctx context.Context, op, title, msg string) (string, error) {
	token := s.Token()
	if token == "" {
		return "", s.failWith(ctx, op, title, msg, adapter.ErrUnauthenticated)
	}
	return token, nil
}
