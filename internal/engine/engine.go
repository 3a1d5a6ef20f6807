// Package engine implements the offline-first synchronization core.
//
// One Engine instance manages one domain collection (clips, product plans,
// saved content, timeline milestones), parameterized by the domain's local
// storage key and remote collection name. Every mutation writes to the local
// store first and returns; the remote push that follows is best-effort. Local
// failures are fatal to the calling operation, remote failures never are —
// they only leave the record unsynced, to be retried by SyncAll.
//
// The engine is stateless between calls: it always reads the full collection,
// mutates in memory and writes the full collection back. Callers are expected
// to invoke operations against one id sequentially; concurrent mutations to
// the same record resolve last-write-wins, consistent with the remote layer.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/localstore"
	"github.com/creatorsync/creatorsync/internal/logging"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
	"github.com/google/uuid"
)

// Engine synchronizes one domain collection between the local and remote
// stores.
type Engine[P any] struct {
	key        string
	collection string
	local      localstore.Store
	remote     remote.Store
	logger     logging.Logger
	now        func() time.Time
}

// SyncReport summarizes one bulk-retry pass.
type SyncReport struct {
	Pushed int
	Failed int
}

// New returns an engine for the domain stored under key locally and under
// collection remotely.
func New[P any](key, collection string, local localstore.Store, rs remote.Store, logger logging.Logger) *Engine[P] {
	return &Engine[P]{
		key:        key,
		collection: collection,
		local:      local,
		remote:     rs,
		logger:     logger.With("collection", collection),
		now:        time.Now,
	}
}

// Records returns the current local view of the collection. Absent or
// unreadable data degrades to an empty collection; reads never fail.
func (e *Engine[P]) Records(ctx context.Context) []Record[P] {
	data, err := e.local.ReadAll(ctx, e.key)
	if err != nil {
		e.logger.Warn(ctx, "local read failed, treating collection as empty", "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var records []Record[P]
	if err := json.Unmarshal(data, &records); err != nil {
		e.logger.Warn(ctx, "local data corrupt, treating collection as empty", "error", err)
		return nil
	}
	return records
}

// UnsyncedCount returns how many local records still await remote confirmation.
func (e *Engine[P]) UnsyncedCount(ctx context.Context) int {
	return UnsyncedCount(e.Records(ctx))
}

// LoadAndMerge reads the local and remote collections, merges them with
// remote-wins-per-id semantics, persists the merged view locally and returns
// it. When the remote store is unreachable (including the nil-session case)
// the local view is returned unchanged — the UI is never blocked on remote
// availability.
func (e *Engine[P]) LoadAndMerge(ctx context.Context, sess *session.Session) ([]Record[P], error) {
	local := e.Records(ctx)

	docs, err := e.remote.FetchAll(ctx, sess, e.collection)
	if err != nil {
		e.logger.Debug(ctx, "remote fetch failed, using local view", "error", err)
		return local, nil
	}

	remoteRecords := make([]Record[P], 0, len(docs))
	for _, doc := range docs {
		rec, err := e.fromDocument(doc)
		if err != nil {
			e.logger.Warn(ctx, "skipping undecodable remote document", "id", doc.ID, "error", err)
			continue
		}
		remoteRecords = append(remoteRecords, rec)
	}

	merged := Merge(local, remoteRecords)
	if err := e.writeLocal(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Create constructs a record from payload, persists it locally and returns
// it. The remote push that follows is best-effort: on success the stored
// record's Synced flag flips to true, on failure the record stays queued and
// no error reaches the caller.
func (e *Engine[P]) Create(ctx context.Context, sess *session.Session, payload P) (Record[P], error) {
	now := e.now()
	rec := Record[P]{
		ID:           uuid.NewString(),
		Payload:      payload,
		CreatedAt:    now,
		LastModified: now,
	}

	records := append(e.Records(ctx), rec)
	if err := e.writeLocal(ctx, records); err != nil {
		return Record[P]{}, err
	}

	e.push(ctx, sess, rec)
	return rec, nil
}

// Update applies mutate to the payload of the record with the given id,
// bumps LastModified, resets Synced and persists locally, then attempts the
// same best-effort push as Create. Returns common.ErrNotFound if no record
// has that id.
func (e *Engine[P]) Update(ctx context.Context, sess *session.Session, id string, mutate func(*P)) (Record[P], error) {
	records := e.Records(ctx)

	idx := -1
	for i := range records {
		if records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Record[P]{}, common.ErrNotFound
	}

	mutate(&records[idx].Payload)
	records[idx].Synced = false
	if t := e.now(); t.After(records[idx].LastModified) {
		records[idx].LastModified = t
	}

	if err := e.writeLocal(ctx, records); err != nil {
		return Record[P]{}, err
	}

	rec := records[idx]
	e.push(ctx, sess, rec)
	return rec, nil
}

// Remove deletes the record locally, then attempts a best-effort remote
// delete. Local deletion is authoritative: a failed remote delete is logged
// and never retried. Returns common.ErrNotFound if no record has that id.
func (e *Engine[P]) Remove(ctx context.Context, sess *session.Session, id string) error {
	records := e.Records(ctx)

	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return common.ErrNotFound
	}

	if err := e.writeLocal(ctx, kept); err != nil {
		return err
	}

	if err := e.remote.Delete(ctx, sess, e.collection, id); err != nil {
		e.logger.Warn(ctx, "remote delete failed, local deletion stands", "id", id, "error", err)
	}
	return nil
}

// SyncAll pushes every unsynced record sequentially in stored order. Each
// success is persisted immediately, so a crash mid-batch does not re-lose
// progress; each failure is logged and the loop continues with the next
// record. A merge pass afterwards reconciles anything pushed from other
// devices in the interim.
//
// The returned error covers local persistence only; remote failures are
// reflected in the report's Failed count.
func (e *Engine[P]) SyncAll(ctx context.Context, sess *session.Session) (SyncReport, error) {
	var report SyncReport

	records := e.Records(ctx)
	for i := range records {
		if records[i].Synced {
			continue
		}

		doc, err := e.toDocument(records[i])
		if err != nil {
			e.logger.Error(ctx, "failed to encode record, skipping", "id", records[i].ID, "error", err)
			report.Failed++
			continue
		}
		if err := e.remote.Upsert(ctx, sess, e.collection, doc); err != nil {
			e.logger.Warn(ctx, "push failed, record stays queued", "id", records[i].ID, "error", err)
			report.Failed++
			continue
		}

		records[i].Synced = true
		report.Pushed++
		if err := e.writeLocal(ctx, records); err != nil {
			return report, err
		}
	}

	if _, err := e.LoadAndMerge(ctx, sess); err != nil {
		return report, err
	}
	return report, nil
}

// push attempts a best-effort remote upsert of rec and, on success, persists
// the flipped Synced flag. Remote failures are logged only: local success is
// the operation's contract, sync happens later.
func (e *Engine[P]) push(ctx context.Context, sess *session.Session, rec Record[P]) {
	doc, err := e.toDocument(rec)
	if err != nil {
		e.logger.Error(ctx, "failed to encode record for push", "id", rec.ID, "error", err)
		return
	}
	if err := e.remote.Upsert(ctx, sess, e.collection, doc); err != nil {
		e.logger.Debug(ctx, "push failed, record queued for retry", "id", rec.ID, "error", err)
		return
	}
	e.markSynced(ctx, rec.ID)
}

// markSynced re-reads the collection and persists Synced=true for id. A
// failed flag write is only logged: the record will simply be re-pushed by
// the next SyncAll, and re-upserting an already-synced record is a no-op.
func (e *Engine[P]) markSynced(ctx context.Context, id string) {
	records := e.Records(ctx)
	for i := range records {
		if records[i].ID == id {
			records[i].Synced = true
			if err := e.writeLocal(ctx, records); err != nil {
				e.logger.Warn(ctx, "failed to persist synced flag", "id", id, "error", err)
			}
			return
		}
	}
}

func (e *Engine[P]) writeLocal(ctx context.Context, records []Record[P]) error {
	if records == nil {
		records = []Record[P]{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%w: failed to encode collection: %w", common.ErrPersistence, err)
	}
	return e.local.WriteAll(ctx, e.key, data)
}

func (e *Engine[P]) toDocument(rec Record[P]) (remote.Document, error) {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return remote.Document{}, fmt.Errorf("failed to encode payload: %w", err)
	}
	return remote.Document{
		ID:           rec.ID,
		Payload:      payload,
		CreatedAt:    rec.CreatedAt,
		LastModified: rec.LastModified,
	}, nil
}

// fromDocument converts a remote document into a record. Anything fetched
// from the remote store is by definition confirmed there, so Synced is true.
func (e *Engine[P]) fromDocument(doc remote.Document) (Record[P], error) {
	var payload P
	if err := json.Unmarshal(doc.Payload, &payload); err != nil {
		return Record[P]{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	return Record[P]{
		ID:           doc.ID,
		Payload:      payload,
		CreatedAt:    doc.CreatedAt,
		LastModified: doc.LastModified,
		Synced:       true,
	}, nil
}
