// Package postgres implements the remote store over a self-hosted PostgreSQL
// database. Documents live in one table keyed by (user_id, collection, id);
// last_modified is stamped server-side on every upsert.
package postgres

import (
	"context"
	"fmt"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/dbx"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
)

// Store implements remote.Store over a dbx.DBTX (*sql.DB or *sql.Tx).
type Store struct {
	db dbx.DBTX
}

// NewStore constructs a Store bound to the given DBTX.
func NewStore(db dbx.DBTX) *Store {
	return &Store{db: db}
}

// FetchAll returns every document of one collection belonging to the session
// user, ordered by creation time.
func (s *Store) FetchAll(ctx context.Context, sess *session.Session, collection string) ([]remote.Document, error) {
	if sess == nil {
		return nil, common.ErrRemoteUnavailable
	}

	query := `
		SELECT id, payload, created_at, last_modified FROM documents
		WHERE user_id=$1 AND collection=$2
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, sess.UserID, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to select documents: %w", common.ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var result []remote.Document
	for rows.Next() {
		var doc remote.Document
		if err := rows.Scan(&doc.ID, &doc.Payload, &doc.CreatedAt, &doc.LastModified); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}
	return result, nil
}

// Upsert inserts or overwrites the document with the same id for the session
// user (last-write-wins, no server-side merge).
func (s *Store) Upsert(ctx context.Context, sess *session.Session, collection string, doc remote.Document) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	query := `
		INSERT INTO documents (user_id, collection, id, payload, created_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (user_id, collection, id)
		DO UPDATE SET
			payload = EXCLUDED.payload,
			last_modified = now()
	`
	_, err := s.db.ExecContext(ctx, query, sess.UserID, collection, doc.ID, []byte(doc.Payload), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: failed to upsert document: %w", common.ErrRemoteUnavailable, err)
	}
	return nil
}

// Delete removes the document if present. Deleting a missing document is a no-op.
func (s *Store) Delete(ctx context.Context, sess *session.Session, collection string, id string) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}

	query := `DELETE FROM documents WHERE user_id=$1 AND collection=$2 AND id=$3`
	_, err := s.db.ExecContext(ctx, query, sess.UserID, collection, id)
	if err != nil {
		return fmt.Errorf("%w: failed to delete document: %w", common.ErrRemoteUnavailable, err)
	}
	return nil
}
