package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-client-desk/models"
)

// FetchClients replaces the client list with the backend's. On failure the
// list is unchanged. A successful fetch is not notified.
func (s *Store) FetchClients(ctx context.Context) error {
	epoch, end := s.begin()
	defer end()

	token, err := s.sessionToken(ctx, OpFetchClients, titleFetchFailed, msgClientNoSession)
	if err != nil {
		return err
	}

	list, err := s.backend.ListClients(ctx, token)
	if err != nil {
		return s.fail(ctx, OpFetchClients, titleFetchFailed, err)
	}

	if err = s.apply(epoch, func() {
		s.clients = slices.Clone(list)
	}); err != nil {
		return s.fail(ctx, OpFetchClients, titleFetchFailed, err)
	}

	s.log.Debug().Int("count", len(list)).Msg("clients fetched")
	return nil
}

// AddClient creates c on the backend and appends the stored record, with its
// backend-assigned id, to the client list.
func (s *Store) AddClient(ctx context.Context, c models.NewClient) (models.Client, error) {
	epoch, end := s.begin()
	defer end()

	token, err := s.sessionToken(ctx, OpAddClient, titleAddFailed, msgClientNoSession)
	if err != nil {
		return models.Client{}, err
	}

	created, err := s.backend.AddClient(ctx, token, c)
	if err != nil {
		return models.Client{}, s.fail(ctx, OpAddClient, titleAddFailed, err)
	}

	if err = s.apply(epoch, func() {
		s.clients = append(s.clients, created)
	}); err != nil {
		return models.Client{}, s.fail(ctx, OpAddClient, titleAddFailed, err)
	}

	s.log.Debug().Str("client_id", created.ID).Msg("client added")
	s.notify(ctx, titleClientAdded, fmt.Sprintf(msgClientAdded, created.Name), models.NotificationDefault)
	return created, nil
}
