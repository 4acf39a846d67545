package session

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-client-desk/internal/adapter"
	"github.com/MKhiriev/go-client-desk/models"
)

// Restore resumes the session from the persisted token.
//
// Without a stored token the session stays unauthenticated and Restore
// returns nil. A stored token is checked with FetchProfile: on success the
// session becomes authenticated with that token, on any failure the token is
// removed from storage, the session is left unauthenticated and the failure
// is returned. Restore does not notify.
func (s *Store) Restore(ctx context.Context) error {
	epoch, end := s.begin()
	defer end()

	token, ok, err := s.tokens.Get(ctx, TokenKey)
	if err != nil {
		s.log.Error().Err(err).Str("op", OpRestore).Msg("failed to read stored session token")
		return &Error{Op: OpRestore, Message: adapter.UserMessage(err), Err: err}
	}
	if !ok || token == "" {
		s.log.Debug().Msg("no stored session token")
		return nil
	}

	user, err := s.backend.FetchProfile(ctx, token)
	if err != nil {
		s.log.Info().Err(err).Str("op", OpRestore).Msg("stored session token rejected, discarding it")
		if s.apply(epoch, func() {
			s.user, s.token, s.clients = nil, "", nil
		}) == nil {
			s.removeToken(ctx, epoch)
		}
		return &Error{Op: OpRestore, Message: adapter.UserMessage(err), Err: err}
	}

	if err = s.apply(epoch, func() {
		s.user, s.token, s.clients = &user, token, nil
	}); err != nil {
		return &Error{Op: OpRestore, Message: msgSessionChanged, Err: err}
	}

	s.log.Debug().Str("user_id", user.ID).Msg("session restored")
	return nil
}

// Login authenticates with email and password. On success the session is
// authenticated and its token persisted; on failure the state is unchanged.
func (s *Store) Login(ctx context.Context, email, password string) error {
	epoch, end := s.begin()
	defer end()

	res, err := s.backend.Authenticate(ctx, email, password)
	if err != nil {
		return s.fail(ctx, OpLogin, titleLoginFailed, err)
	}
	if err = s.open(ctx, epoch, res); err != nil {
		return s.fail(ctx, OpLogin, titleLoginFailed, err)
	}

	s.log.Info().Str("user_id", res.User.ID).Msg("logged in")
	s.notify(ctx, titleLoginSuccess, fmt.Sprintf(msgWelcomeBack, res.User.Name), models.NotificationDefault)
	return nil
}

// Signup registers a new account and opens a session for it. A taken email
// fails with a cause matching adapter.ErrEmailInUse.
func (s *Store) Signup(ctx context.Context, name, email, password string) error {
	epoch, end := s.begin()
	defer end()

	res, err := s.backend.Register(ctx, name, email, password)
	if err != nil {
		return s.fail(ctx, OpSignup, titleSignupFailed, err)
	}
	if err = s.open(ctx, epoch, res); err != nil {
		return s.fail(ctx, OpSignup, titleSignupFailed, err)
	}

	s.log.Info().Str("user_id", res.User.ID).Msg("account created")
	s.notify(ctx, titleAccountCreated, msgAccountCreated, models.NotificationDefault)
	return nil
}

// open sets user and token together and persists the token. The client list
// of a previous session is dropped.
func (s *Store) open(ctx context.Context, epoch uint64, res models.AuthResult) error {
	if res.Token == "" {
		return errMissingToken
	}

	user := res.User
	if err := s.apply(epoch, func() {
		s.user, s.token, s.clients = &user, res.Token, nil
	}); err != nil {
		return err
	}

	s.persistToken(ctx, epoch, res.Token)
	return nil
}

// Logout closes the session. It never fails and may be called at any time,
// including while another operation is in flight, whose result is then
// discarded. Only closing an open session is notified.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	wasOpen := s.user != nil || s.token != ""
	s.epoch++
	epoch := s.epoch
	s.user, s.token, s.clients = nil, "", nil
	s.mu.Unlock()

	s.removeToken(ctx, epoch)

	if !wasOpen {
		return
	}
	s.log.Info().Msg("logged out")
	s.notify(ctx, titleLoggedOut, msgLoggedOut, models.NotificationDefault)
}
