package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-client-desk/internal/store"
	"github.com/MKhiriev/go-client-desk/models"
)

// userRecord is a row of the simulated user table. Email is lower-cased and
// doubles as the table key.
type userRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (r userRecord) user() models.User {
	return models.User{ID: r.ID, Email: r.Email, Name: r.Name}
}

// clientRecord is a row of the simulated client table.
type clientRecord struct {
	ID      string              `json:"id"`
	OwnerID string              `json:"owner_id"`
	Name    string              `json:"name"`
	Email   string              `json:"email"`
	Company string              `json:"company"`
	Status  models.ClientStatus `json:"status"`
}

func newClientRecord(ownerID string, c models.Client) clientRecord {
	return clientRecord{
		ID:      c.ID,
		OwnerID: ownerID,
		Name:    c.Name,
		Email:   c.Email,
		Company: c.Company,
		Status:  c.Status,
	}
}

func (r clientRecord) client() models.Client {
	return models.Client{ID: r.ID, Name: r.Name, Email: r.Email, Company: r.Company, Status: r.Status}
}

// documents reads and writes the two JSON documents of the local backend.
type documents struct {
	storage store.Storage
}

func newDocuments(storage store.Storage) *documents {
	return &documents{storage: storage}
}

func (d *documents) loadUsers(ctx context.Context) (map[string]userRecord, error) {
	raw, ok, err := d.storage.Get(ctx, UsersKey)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", UsersKey, err)
	}
	return decodeUsers(raw, ok)
}

// updateUsers applies fn to the user table and stores the result in one
// atomic step. An error from fn aborts the update and is returned as is.
func (d *documents) updateUsers(ctx context.Context, fn func(users map[string]userRecord) error) error {
	return d.update(ctx, UsersKey, func(raw string, ok bool) (string, error) {
		users, err := decodeUsers(raw, ok)
		if err != nil {
			return "", err
		}
		if err = fn(users); err != nil {
			return "", err
		}
		return encode(UsersKey, users)
	})
}

func (d *documents) loadClients(ctx context.Context) ([]clientRecord, error) {
	raw, ok, err := d.storage.Get(ctx, ClientsKey)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", ClientsKey, err)
	}
	return decodeClients(raw, ok)
}

// appendClient adds c to the end of the client table in one atomic step.
func (d *documents) appendClient(ctx context.Context, c clientRecord) error {
	return d.update(ctx, ClientsKey, func(raw string, ok bool) (string, error) {
		clients, err := decodeClients(raw, ok)
		if err != nil {
			return "", err
		}
		return encode(ClientsKey, append(clients, c))
	})
}

// update runs fn as one transaction when the storage is a [store.Updater],
// otherwise as a plain read followed by a write.
func (d *documents) update(ctx context.Context, key string, fn store.UpdateFunc) error {
	if u, ok := d.storage.(store.Updater); ok {
		return u.Update(ctx, key, fn)
	}

	raw, ok, err := d.storage.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", key, err)
	}
	value, err := fn(raw, ok)
	if err != nil {
		return err
	}
	if err = d.storage.Set(ctx, key, value); err != nil {
		return fmt.Errorf("error writing %s: %w", key, err)
	}
	return nil
}

func decodeUsers(raw string, ok bool) (map[string]userRecord, error) {
	users := make(map[string]userRecord)
	if err := decode(UsersKey, raw, ok, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = make(map[string]userRecord)
	}
	return users, nil
}

func decodeClients(raw string, ok bool) ([]clientRecord, error) {
	var clients []clientRecord
	if err := decode(ClientsKey, raw, ok, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func decode(key, raw string, ok bool, dst any) error {
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("error decoding %s: %w", key, err)
	}
	return nil
}

func encode(key string, v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding %s: %w", key, err)
	}
	return string(raw), nil
}
