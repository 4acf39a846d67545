package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-client-desk/internal/logger"
	"github.com/MKhiriev/go-client-desk/migrations"
)

// Dialects understood by goose and by the kv queries.
const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

// DB wraps a *sql.DB together with the dialect specific pieces the kv
// storage needs: the goose dialect, the squirrel placeholder format and the
// driver error classifier.
type DB struct {
	*sql.DB
	dialect            string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
