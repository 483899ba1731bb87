package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/wires/internal/kv"
)

var _ kv.Backend = (*Store)(nil)

// Write applies batch in a single transaction.
// Puts use INSERT ... ON CONFLICT DO UPDATE so rewriting a key replaces its
// value. Deleting an absent key is a no-op.
func (s *Store) Write(ctx context.Context, batch []kv.Mutation) error {
	if err := kv.Validate(batch); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write batch: begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, m := range batch {
		switch m.Op {
		case kv.OpPut:
			value := m.Value
			if value == nil {
				value = []byte{}
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO kv (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, m.Key, value)
		case kv.OpDelete:
			_, err = tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, m.Key)
		}
		if err != nil {
			return fmt.Errorf("write batch: %s %x: %w", m.Op, m.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write batch: commit: %w", err)
	}
	s.logger.Debug("batch committed", "mutations", len(batch))
	return nil
}

// Get returns the value stored at key, or kv.ErrNotFound.
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %x: %w", key, err)
	}
	return value, nil
}

// Scan visits every key starting with prefix in ascending order.
//
// The store holds a single connection, so fn must not call back into the
// store while the scan is running.
func (s *Store) Scan(ctx context.Context, prefix []byte, fn func(k, v []byte) error) error {
	var (
		rows *sql.Rows
		err  error
	)
	if end := kv.PrefixEnd(prefix); end != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT key, value FROM kv
			WHERE key >= ? AND key < ?
			ORDER BY key
		`, nonNil(prefix), end)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT key, value FROM kv
			WHERE key >= ?
			ORDER BY key
		`, nonNil(prefix))
	}
	if err != nil {
		return fmt.Errorf("scan %x: %w", prefix, err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v []byte
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scan %x: %w", prefix, err)
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan %x: %w", prefix, err)
	}
	return nil
}

// nonNil keeps an empty prefix from binding as SQL NULL, which compares
// false against every key.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
