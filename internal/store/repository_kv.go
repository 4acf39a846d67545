package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-client-desk/internal/logger"
)

type kvRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewKVRepository returns a SQL backed [CloseableStorage] over an already
// migrated db.
func NewKVRepository(db *DB, logger *logger.Logger) CloseableStorage {
	return &kvRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	query, args, err := buildGetValueQuery(r.db.builder, key)
	if err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Get").Msg("error building query")
		return "", false, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Get").Str("key", key).Msg("error reading value")
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildUpsertValueQuery(r.db.builder, key, value, r.now())
	if err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Set").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Set").Str("key", key).Msg("error saving value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *kvRepository) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildDeleteValueQuery(r.db.builder, key)
	if err != nil {
		r.logger.Err(err).Str("func", "kvRepository.Remove").Msg("error building query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Remove").Str("key", key).Msg("error removing value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Update reads, transforms and writes key in one transaction. The row is
// reserved before it is read, so an update from another process sharing the
// database waits for this one to commit instead of overwriting it.
func (r *kvRepository) Update(ctx context.Context, key string, fn UpdateFunc) (err error) {
	if key == "" {
		return ErrEmptyKey
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Update").Msg("error starting transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := buildReserveKeyQuery(r.db.builder, key, r.now())
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Update").Str("key", key).Msg("error reserving key")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	query, args, err = buildLockValueQuery(r.db.builder, key, r.db.dialect == dialectPostgres)
	if err != nil {
		return err
	}
	var current string
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&current); err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Update").Str("key", key).Msg("error reading value")
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	value, err := fn(current, inserted == 0)
	if err != nil {
		return err
	}

	query, args, err = buildUpsertValueQuery(r.db.builder, key, value, r.now())
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Update").Str("key", key).Msg("error saving value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		err = r.db.errorClassificator.Classify(err)
		r.logger.Err(err).Str("func", "kvRepository.Update").Str("key", key).Msg("error committing transaction")
		return fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}
	return nil
}

func (r *kvRepository) Close() error {
	return r.db.Close()
}
