package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
)

func TestNewStorage_Memory(t *testing.T) {
	s, err := NewStorage(context.Background(), config.Storage{DSN: "memory"}, logger.Nop())
	require.NoError(t, err)

	_, ok := s.(*memoryStorage)
	assert.True(t, ok)
}

func TestNewStorage_EmptyDSN(t *testing.T) {
	_, err := NewStorage(context.Background(), config.Storage{DSN: "  "}, logger.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidStorageConfigs)
}

// TestNewStorage_SQLiteFile verifies that values survive reopening the same
// database file.
func TestNewStorage_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "client-desk.db")

	s, err := NewStorage(ctx, config.Storage{DSN: dsn}, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "token", "abc"))
	require.NoError(t, s.Set(ctx, "token", "def"))
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Remove(ctx, "other"))
	require.NoError(t, s.Close())

	reopened, err := NewStorage(ctx, config.Storage{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "def", v)

	_, ok, err = reopened.Get(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStorage_SQLiteInMemory(t *testing.T) {
	ctx := context.Background()

	s, err := NewStorage(ctx, config.Storage{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestIsPostgresDSN(t *testing.T) {
	assert.True(t, isPostgresDSN("postgres://u:p@localhost/db"))
	assert.True(t, isPostgresDSN("PostgreSQL://localhost/db"))
	assert.False(t, isPostgresDSN("client-desk.db"))
	assert.False(t, isPostgresDSN("/var/lib/postgres/client.db"))
}

// TestNewStorage_SQLiteUpdateAcrossConnections runs read-modify-write
// updates from two storages opened on the same file, as two client
// processes would, and expects no update to be lost.
func TestNewStorage_SQLiteUpdateAcrossConnections(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client-desk.db")

	var storages []Updater
	for range 2 {
		s, err := NewStorage(ctx, config.Storage{DSN: dsn}, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		u, ok := s.(Updater)
		require.True(t, ok)
		storages = append(storages, u)
	}

	const perStorage = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perStorage)
	for _, s := range storages {
		wg.Add(1)
		go func(s Updater) {
			defer wg.Done()
			for range perStorage {
				errs <- s.Update(ctx, "counter", func(value string, _ bool) (string, error) {
					return value + "x", nil
				})
			}
		}(s)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	v, ok, err := storages[0].Get(ctx, "counter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, v, 2*perStorage)
}
