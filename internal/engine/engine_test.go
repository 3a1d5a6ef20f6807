package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorsync/creatorsync/internal/common"
	"github.com/creatorsync/creatorsync/internal/logging"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
)

// fakeLocal implements localstore.Store in memory with injectable failures.
type fakeLocal struct {
	data     map[string][]byte
	readErr  error
	writeErr error
	writes   int
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{data: make(map[string][]byte)}
}

func (f *fakeLocal) ReadAll(ctx context.Context, key string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.data[key], nil
}

func (f *fakeLocal) WriteAll(ctx context.Context, key string, data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	f.data[key] = data
	return nil
}

// fakeRemote implements remote.Store in memory with injectable failures.
type fakeRemote struct {
	docs      map[string]remote.Document
	fetchErr  error
	failIDs   map[string]bool
	upsertIDs []string
	deleteIDs []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: make(map[string]remote.Document), failIDs: make(map[string]bool)}
}

func (f *fakeRemote) FetchAll(ctx context.Context, sess *session.Session, collection string) ([]remote.Document, error) {
	if sess == nil {
		return nil, common.ErrRemoteUnavailable
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	result := make([]remote.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		result = append(result, doc)
	}
	return result, nil
}

func (f *fakeRemote) Upsert(ctx context.Context, sess *session.Session, collection string, doc remote.Document) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}
	if f.failIDs[doc.ID] {
		return common.ErrRemoteUnavailable
	}
	f.upsertIDs = append(f.upsertIDs, doc.ID)
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, sess *session.Session, collection string, id string) error {
	if sess == nil {
		return common.ErrRemoteUnavailable
	}
	f.deleteIDs = append(f.deleteIDs, id)
	delete(f.docs, id)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newTestEngine(local *fakeLocal, rs remote.Store) *Engine[note] {
	return New[note]("test.notes", "notes", local, rs, testLogger())
}

func testSession() *session.Session {
	return &session.Session{UserID: "u1"}
}

func TestCreate_LocalFirstDurability(t *testing.T) {
	local := newFakeLocal()
	failing := newFakeRemote()
	failing.fetchErr = errors.New("network down")
	e := newTestEngine(local, failingUpserts{failing})
	ctx := context.Background()

	rec, err := e.Create(ctx, testSession(), note{Text: "hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.Synced)

	// merge-on-load with remote unreachable returns the local view unchanged
	got, err := e.LoadAndMerge(ctx, testSession())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
	assert.Equal(t, "hello", got[0].Payload.Text)
	assert.False(t, got[0].Synced)
}

// failingUpserts wraps a fakeRemote so every upsert fails.
type failingUpserts struct {
	*fakeRemote
}

func (f failingUpserts) Upsert(ctx context.Context, sess *session.Session, collection string, doc remote.Document) error {
	return common.ErrRemoteUnavailable
}

func TestCreate_SuccessfulPushFlipsSynced(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	rec, err := e.Create(ctx, testSession(), note{Text: "hi"})
	require.NoError(t, err)

	records := e.Records(ctx)
	require.Len(t, records, 1)
	assert.True(t, records[0].Synced)
	assert.Contains(t, rs.docs, rec.ID)
}

func TestCreate_NilSessionStaysQueued(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	rec, err := e.Create(ctx, nil, note{Text: "offline"})
	require.NoError(t, err)
	assert.False(t, rec.Synced)
	assert.Empty(t, rs.upsertIDs)
	assert.Equal(t, 1, e.UnsyncedCount(ctx))
}

func TestCreate_LocalWriteFailurePropagates(t *testing.T) {
	local := newFakeLocal()
	local.writeErr = common.ErrPersistence
	e := newTestEngine(local, newFakeRemote())

	_, err := e.Create(context.Background(), testSession(), note{Text: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestSyncAll_EventualConsistency(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	rec, err := e.Create(ctx, nil, note{Text: "draft"})
	require.NoError(t, err)
	require.Equal(t, 1, e.UnsyncedCount(ctx))

	report, err := e.SyncAll(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pushed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, e.UnsyncedCount(ctx))

	doc, ok := rs.docs[rec.ID]
	require.True(t, ok)
	var stored note
	require.NoError(t, json.Unmarshal(doc.Payload, &stored))
	assert.Equal(t, note{Text: "draft"}, stored)
}

func TestSyncAll_PartialFailureIsolation(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	r1, err := e.Create(ctx, nil, note{Text: "one"})
	require.NoError(t, err)
	r2, err := e.Create(ctx, nil, note{Text: "two"})
	require.NoError(t, err)
	r3, err := e.Create(ctx, nil, note{Text: "three"})
	require.NoError(t, err)

	rs.failIDs[r2.ID] = true

	report, err := e.SyncAll(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Pushed)
	assert.Equal(t, 1, report.Failed)

	byID := map[string]Record[note]{}
	for _, r := range e.Records(ctx) {
		byID[r.ID] = r
	}
	assert.True(t, byID[r1.ID].Synced)
	assert.False(t, byID[r2.ID].Synced)
	assert.True(t, byID[r3.ID].Synced)
}

func TestSyncAll_PersistsProgressPerRecord(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	r1, err := e.Create(ctx, nil, note{Text: "first"})
	require.NoError(t, err)
	r2, err := e.Create(ctx, nil, note{Text: "second"})
	require.NoError(t, err)

	// second push fails and so does the final merge fetch, simulating the
	// remote dropping mid-batch
	rs.failIDs[r2.ID] = true
	rs.fetchErr = errors.New("gone away")

	_, err = e.SyncAll(ctx, testSession())
	require.NoError(t, err)

	// the flipped flag for the first record must already be on disk
	var stored []Record[note]
	require.NoError(t, json.Unmarshal(local.data["test.notes"], &stored))
	byID := map[string]Record[note]{}
	for _, r := range stored {
		byID[r.ID] = r
	}
	assert.True(t, byID[r1.ID].Synced)
	assert.False(t, byID[r2.ID].Synced)
}

func TestSyncAll_PushesSequentiallyInStoredOrder(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	r1, err := e.Create(ctx, nil, note{Text: "a"})
	require.NoError(t, err)
	r2, err := e.Create(ctx, nil, note{Text: "b"})
	require.NoError(t, err)
	r3, err := e.Create(ctx, nil, note{Text: "c"})
	require.NoError(t, err)

	_, err = e.SyncAll(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, []string{r1.ID, r2.ID, r3.ID}, rs.upsertIDs)
}

func TestRemove_DeleteIsNotRetried(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	rec, err := e.Create(ctx, nil, note{Text: "doomed"})
	require.NoError(t, err)

	// remote unreachable during the delete
	require.NoError(t, e.Remove(ctx, nil, rec.ID))
	assert.Empty(t, e.Records(ctx))

	// later retry pass must not attempt to push anything for the deleted id
	_, err = e.SyncAll(ctx, testSession())
	require.NoError(t, err)
	assert.Empty(t, rs.upsertIDs)
	assert.NotContains(t, rs.docs, rec.ID)
}

func TestRemove_NotFound(t *testing.T) {
	e := newTestEngine(newFakeLocal(), newFakeRemote())
	err := e.Remove(context.Background(), testSession(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate_ResetsSyncedAndBumpsLastModified(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	base := time.Unix(5000, 0).UTC()
	e.now = func() time.Time { return base }

	rec, err := e.Create(ctx, testSession(), note{Text: "v1"})
	require.NoError(t, err)
	require.True(t, e.Records(ctx)[0].Synced)

	// remote goes away; the update must still succeed locally
	e.now = func() time.Time { return base.Add(time.Minute) }
	updated, err := e.Update(ctx, nil, rec.ID, func(n *note) { n.Text = "v2" })
	require.NoError(t, err)

	assert.Equal(t, "v2", updated.Payload.Text)
	assert.False(t, updated.Synced)
	assert.Equal(t, base.Add(time.Minute), updated.LastModified)
	assert.Equal(t, rec.CreatedAt, updated.CreatedAt)
}

func TestUpdate_LastModifiedNeverGoesBackwards(t *testing.T) {
	local := newFakeLocal()
	e := newTestEngine(local, newFakeRemote())
	ctx := context.Background()

	e.now = func() time.Time { return time.Unix(9000, 0).UTC() }
	rec, err := e.Create(ctx, nil, note{Text: "x"})
	require.NoError(t, err)

	// clock skew: now() behind the stored timestamp
	e.now = func() time.Time { return time.Unix(8000, 0).UTC() }
	updated, err := e.Update(ctx, nil, rec.ID, func(n *note) { n.Text = "y" })
	require.NoError(t, err)
	assert.Equal(t, time.Unix(9000, 0).UTC(), updated.LastModified)
}

func TestUpdate_NotFound(t *testing.T) {
	e := newTestEngine(newFakeLocal(), newFakeRemote())
	_, err := e.Update(context.Background(), nil, "nope", func(n *note) {})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestLoadAndMerge_RemoteWinsOnceRecordIsRemote(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	// local holds an unsynced "a"; remote holds confirmed "a" and "b"
	localRecords := []Record[note]{
		{ID: "a", Payload: note{Text: "local a"}, Synced: false},
	}
	data, err := json.Marshal(localRecords)
	require.NoError(t, err)
	require.NoError(t, local.WriteAll(ctx, "test.notes", data))

	rs.docs["a"] = remote.Document{ID: "a", Payload: []byte(`{"text":"remote a"}`)}
	rs.docs["b"] = remote.Document{ID: "b", Payload: []byte(`{"text":"remote b"}`)}

	merged, err := e.LoadAndMerge(ctx, testSession())
	require.NoError(t, err)
	require.Len(t, merged, 2)

	byID := map[string]Record[note]{}
	for _, r := range merged {
		byID[r.ID] = r
	}
	assert.Equal(t, "remote a", byID["a"].Payload.Text)
	assert.True(t, byID["a"].Synced)
	assert.Equal(t, "remote b", byID["b"].Payload.Text)
}

func TestLoadAndMerge_PersistsMergedView(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)
	ctx := context.Background()

	rs.docs["r1"] = remote.Document{ID: "r1", Payload: []byte(`{"text":"from remote"}`)}

	_, err := e.LoadAndMerge(ctx, testSession())
	require.NoError(t, err)

	// remote becomes unreachable; the merged view must survive locally
	rs.fetchErr = errors.New("offline")
	got, err := e.LoadAndMerge(ctx, testSession())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "from remote", got[0].Payload.Text)
}

func TestLoadAndMerge_SkipsUndecodableRemoteDocuments(t *testing.T) {
	local := newFakeLocal()
	rs := newFakeRemote()
	e := newTestEngine(local, rs)

	rs.docs["bad"] = remote.Document{ID: "bad", Payload: []byte(`{broken`)}
	rs.docs["good"] = remote.Document{ID: "good", Payload: []byte(`{"text":"fine"}`)}

	merged, err := e.LoadAndMerge(context.Background(), testSession())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "good", merged[0].ID)
}

func TestRecords_CorruptLocalDataDegradesToEmpty(t *testing.T) {
	local := newFakeLocal()
	local.data["test.notes"] = []byte("not json at all")
	e := newTestEngine(local, newFakeRemote())

	assert.Empty(t, e.Records(context.Background()))
	assert.Equal(t, 0, e.UnsyncedCount(context.Background()))
}

func TestRecords_LocalReadErrorDegradesToEmpty(t *testing.T) {
	local := newFakeLocal()
	local.readErr = errors.New("disk on fire")
	e := newTestEngine(local, newFakeRemote())

	assert.Empty(t, e.Records(context.Background()))
}
