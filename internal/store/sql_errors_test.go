package store

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "undefined table", err: pgError(pgerrcode.UndefinedTable), want: ErrStorageNotMigrated},
		{name: "connection exception", err: pgError(pgerrcode.ConnectionException), want: ErrStorageUnavailable},
		{name: "connection failure", err: pgError(pgerrcode.ConnectionFailure), want: ErrStorageUnavailable},
		{name: "cannot connect now", err: pgError(pgerrcode.CannotConnectNow), want: ErrStorageUnavailable},
		{name: "admin shutdown", err: pgError(pgerrcode.AdminShutdown), want: ErrStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestPostgresErrorClassifier_Passthrough(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.NoError(t, c.Classify(nil))

	unique := pgError(pgerrcode.UniqueViolation)
	assert.Same(t, unique, c.Classify(unique))

	plain := errors.New("plain")
	assert.Same(t, plain, c.Classify(plain))
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.NoError(t, c.Classify(nil))
	assert.ErrorIs(t, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}), ErrStorageUnavailable)
	assert.ErrorIs(t, c.Classify(sqlite3.Error{Code: sqlite3.ErrLocked}), ErrStorageUnavailable)
	assert.ErrorIs(t, c.Classify(sqlite3.Error{Code: sqlite3.ErrCantOpen}), ErrStorageUnavailable)

	other := sqlite3.Error{Code: sqlite3.ErrConstraint}
	assert.Equal(t, other, c.Classify(other))

	plain := errors.New("plain")
	assert.Same(t, plain, c.Classify(plain))
}
