// Package localstore implements the on-device persistence layer.
//
// Each domain owns one namespaced key whose value is the serialized list of
// that domain's records. The whole collection is read and replaced as a unit;
// there is no row-level update. This keeps the atomicity story simple at the
// cost of an O(n) rewrite per mutation, which is fine for per-user
// collections of tens to low hundreds of records.
package localstore

import "context"

// Store is the local store boundary used by the sync engine.
//
// ReadAll returns the stored bytes for key, or nil when nothing has been
// stored yet. WriteAll atomically replaces the stored value; a failed write
// must surface to the caller, since reporting it as success would break the
// local-first durability contract.
type Store interface {
	ReadAll(ctx context.Context, key string) ([]byte, error)
	WriteAll(ctx context.Context, key string, data []byte) error
}
