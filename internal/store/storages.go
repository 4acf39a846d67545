package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-client-desk/internal/config"
	"github.com/MKhiriev/go-client-desk/internal/logger"
)

// MemoryDSN selects [NewMemoryStorage] in [NewStorage].
const MemoryDSN = "memory"

// NewStorage opens the durable storage described by cfg.DSN:
//   - "memory": process-local map, nothing is persisted;
//   - postgres:// or postgresql:// URL: PostgreSQL through pgx;
//   - anything else: SQLite file path (created when missing) or ":memory:".
//
// SQL databases are migrated before the storage is returned.
func NewStorage(ctx context.Context, cfg config.Storage, log *logger.Logger) (CloseableStorage, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty dsn", config.ErrInvalidStorageConfigs)
	}

	if strings.EqualFold(dsn, MemoryDSN) {
		log.Debug().Str("func", "NewStorage").Msg("using in-memory storage")
		return NewMemoryStorage(), nil
	}

	var (
		db  *DB
		err error
	)
	if isPostgresDSN(dsn) {
		db, err = NewConnectPostgres(ctx, dsn, log)
	} else {
		db, err = NewConnectSQLite(ctx, dsn, log)
	}
	if err != nil {
		return nil, fmt.Errorf("storage connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewKVRepository(db, log), nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}
