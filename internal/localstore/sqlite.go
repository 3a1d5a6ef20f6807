package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/dbx"
)

// SQLiteStore implements Store over a DBTX (either *sql.DB or *sql.Tx).
// Collections live in a single key/value table, one row per domain.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ReadAll returns the stored value for key. A missing row is not an error;
// nil is returned so callers treat it as an empty collection.
func (s *SQLiteStore) ReadAll(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection[%s]: %w", key, err)
	}
	return data, nil
}

// WriteAll replaces the stored value for key. Failures wrap
// common.ErrPersistence so the engine can propagate them as fatal.
func (s *SQLiteStore) WriteAll(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`, key, data)
	if err != nil {
		return fmt.Errorf("%w: failed to write collection[%s]: %w", common.ErrPersistence, key, err)
	}
	return nil
}
