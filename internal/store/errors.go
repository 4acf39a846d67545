package store

import "errors"

// Storage-level sentinel errors. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrStorageNotMigrated is returned when the kv table does not exist,
	// i.e. migrations were not applied to the database.
	ErrStorageNotMigrated = errors.New("storage is not migrated")

	// ErrStorageUnavailable is returned when the database cannot be reached
	// or is temporarily unable to serve the request (lost connection,
	// locked database file).
	ErrStorageUnavailable = errors.New("storage is unavailable")

	// ErrEmptyKey is returned when an operation is called with an empty key.
	ErrEmptyKey = errors.New("empty storage key")
)

// Low-level database operation errors. These are returned (or wrapped) by
// storage methods when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan kv row")

	// ErrBeginningTransaction is returned when a transaction cannot be
	// started.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommittingTransaction is returned when a transaction cannot be
	// committed.
	ErrCommittingTransaction = errors.New("failed to commit transaction")
)
