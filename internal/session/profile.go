package session

import (
	"context"

	"github.com/MKhiriev/go-client-desk/models"
)

// UpdateProfile sends patch to the backend and merges the returned fields into
// the current user. Fields the backend leaves empty keep their previous
// value. Without a session it fails with adapter.ErrUnauthenticated and the
// backend is not called.
func (s *Store) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	epoch, end := s.begin()
	defer end()

	token, err := s.sessionToken(ctx, OpUpdateProfile, titleUpdateFailed, msgUpdateNoSession)
	if err != nil {
		return err
	}

	updated, err := s.backend.UpdateProfile(ctx, token, patch)
	if err != nil {
		return s.fail(ctx, OpUpdateProfile, titleUpdateFailed, err)
	}

	if err = s.apply(epoch, func() {
		merged := s.user.Merge(updated)
		s.user = &merged
	}); err != nil {
		return s.fail(ctx, OpUpdateProfile, titleUpdateFailed, err)
	}

	s.notify(ctx, titleProfileUpdated, msgProfileUpdated, models.NotificationDefault)
	return nil
}
