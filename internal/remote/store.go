// Package remote defines the remote store boundary: a per-user, per-domain
// document collection in a cloud database, reachable only while a session is
// established. Implementations live in the subpackages dynamo, postgres and
// memory.
package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/creatorsync/creatorsync/internal/session"
)

// Document is the wire shape of one synchronized record. Payload stays raw
// JSON so adapters need no knowledge of domain types; the engine converts
// between Document and its typed records.
//
// LastModified is stamped by the store on upsert, so the remote value may
// differ from the device's clock.
type Document struct {
	ID           string          `json:"id"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
}

// Store describes the remote operations used by the sync engine.
//
// Every method requires a session; with a nil session the call fails fast
// with common.ErrRemoteUnavailable, before any network I/O. Upsert overwrites
// any existing document with the same id (last-write-wins, no server-side
// merge). Delete is best-effort and idempotent.
type Store interface {
	FetchAll(ctx context.Context, sess *session.Session, collection string) ([]Document, error)
	Upsert(ctx context.Context, sess *session.Session, collection string, doc Document) error
	Delete(ctx context.Context, sess *session.Session, collection string, id string) error
}
