// Package migrations holds the embedded goose migrations of the kv storage
// and applies them for PostgreSQL and SQLite.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state
var gooseMu sync.Mutex

// ErrNilDB is returned by Migrate when db is nil.
var ErrNilDB = errors.New("migration error: db is nil")

// Migrate applies all pending migrations to db. dialect is a goose dialect
// name, "postgres" or "sqlite3".
func Migrate(db *sql.DB, dialect string) error {
	if db == nil {
		return ErrNilDB
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
