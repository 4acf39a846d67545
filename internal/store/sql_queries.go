// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	kvTable       = "kv"
	kvKeyColumn   = "key"
	kvValueColumn = "value"
	kvUpdatedAt   = "updated_at"
)

func buildGetValueQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	query, args, err := b.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpsertValueQuery inserts the value or replaces it when the key
// already exists. The ON CONFLICT clause is understood by both PostgreSQL
// and SQLite (3.24+).
func buildUpsertValueQuery(b sq.StatementBuilderType, key, value string, now time.Time) (string, []any, error) {
	query, args, err := b.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvUpdatedAt).
		Values(key, value, now).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (%[1]s) DO UPDATE SET %[2]s = excluded.%[2]s, %[3]s = excluded.%[3]s",
			kvKeyColumn, kvValueColumn, kvUpdatedAt,
		)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteValueQuery(b sq.StatementBuilderType, key string) (string, []any, error) {
	query, args, err := b.
		Delete(kvTable).
		Where(sq.Eq{kvKeyColumn: key}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildReserveKeyQuery inserts an empty row for key unless one exists. Run
// first in a transaction it takes the SQLite write lock and gives
// PostgreSQL a row to lock; RowsAffected tells whether the key was absent.
func buildReserveKeyQuery(b sq.StatementBuilderType, key string, now time.Time) (string, []any, error) {
	query, args, err := b.
		Insert(kvTable).
		Columns(kvKeyColumn, kvValueColumn, kvUpdatedAt).
		Values(key, "", now).
		Suffix(fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", kvKeyColumn)).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildLockValueQuery reads the value of key, locking the row where the
// dialect supports row locks.
func buildLockValueQuery(b sq.StatementBuilderType, key string, rowLock bool) (string, []any, error) {
	q := b.
		Select(kvValueColumn).
		From(kvTable).
		Where(sq.Eq{kvKeyColumn: key})
	if rowLock {
		q = q.Suffix("FOR UPDATE")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
