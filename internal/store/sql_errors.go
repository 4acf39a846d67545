package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassificator maps driver specific errors to the storage sentinels.
// Classify returns err wrapped with [ErrStorageNotMigrated] or
// [ErrStorageUnavailable] when it recognizes the cause, and err unchanged
// otherwise. A nil err yields nil.
type ErrorClassificator interface {
	Classify(err error) error
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
// It inspects the pgconn error code returned by the pgx driver.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier] ready for use.
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html for the
// full list of PostgreSQL error codes.
//
// Unavailable:
//   - Class 08: connection exceptions
//   - 57P01 admin shutdown, 57P03 cannot connect now
//   - dial failures and timeouts reported by pgconn
//
// Not migrated:
//   - 42P01 undefined table
func (c *PostgresErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UndefinedTable:
			return fmt.Errorf("%w: %w", ErrStorageNotMigrated, err)
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgErr.Code == pgerrcode.AdminShutdown,
			pgErr.Code == pgerrcode.CannotConnectNow:
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier] ready for use.
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. Busy, locked and unopenable
// databases are unavailable; a missing table means not migrated.
func (c *SQLiteErrorClassifier) Classify(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen:
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	case sqlite3.ErrError:
		if strings.Contains(sqliteErr.Error(), "no such table") {
			return fmt.Errorf("%w: %w", ErrStorageNotMigrated, err)
		}
	}

	return err
}
