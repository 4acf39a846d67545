package store

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns a process-local [CloseableStorage]. Values are
// lost when the process exits.
func NewMemoryStorage() CloseableStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (m *memoryStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStorage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *memoryStorage) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Update runs fn under the write lock.
func (m *memoryStorage) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.values[key]
	value, err := fn(old, ok)
	if err != nil {
		return err
	}
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Close() error {
	return nil
}
