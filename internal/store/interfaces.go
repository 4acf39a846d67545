package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/storage_mock.go -package=mock

// Storage is a durable string key-value store. The session keeps its token
// in it and the local backend its user and client documents.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; err is reserved for storage failures.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// UpdateFunc receives the current value of a key, ok is false when the key
// is absent, and returns the value to store instead. An error aborts the
// update and is returned unchanged by [Updater.Update].
type UpdateFunc func(value string, ok bool) (string, error)

// Updater is a [Storage] that can read-modify-write a single key
// atomically, also against other processes sharing the same database.
type Updater interface {
	Storage
	// Update passes the value under key to fn and stores its result. fn must
	// not use the storage itself.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// CloseableStorage is a [Storage] holding resources that must be released.
type CloseableStorage interface {
	Storage
	Close() error
}
