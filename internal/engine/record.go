package engine

import "time"

// Record is the unit of synchronization: a domain payload plus identity and
// sync metadata.
//
// Synced is true only when the remote store has confirmed acceptance of the
// exact state currently held; it is false on creation, on any local mutation
// and on any push failure. Synced=false doubles as membership in the retry
// queue — there is no separate pending structure.
type Record[P any] struct {
	ID           string    `json:"id"`
	Payload      P         `json:"payload"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
	Synced       bool      `json:"synced"`
}

// Merge reconciles the local and remote views of one collection.
//
// Every remote record is included: the remote store only ever holds records
// that were previously confirmed, so once a record has made it there the
// remote copy wins. Local records whose id is absent remotely are appended in
// their stored order — these are the locally-created-but-not-yet-synced ones.
//
// The result is idempotent and commutative over repeated application:
// Merge(Merge(local, remote), remote) == Merge(local, remote).
func Merge[P any](local, remote []Record[P]) []Record[P] {
	merged := make([]Record[P], 0, len(local)+len(remote))
	seen := make(map[string]struct{}, len(remote))

	for _, rec := range remote {
		merged = append(merged, rec)
		seen[rec.ID] = struct{}{}
	}
	for _, rec := range local {
		if _, ok := seen[rec.ID]; !ok {
			merged = append(merged, rec)
		}
	}

	return merged
}

// UnsyncedCount returns how many records still await remote confirmation.
func UnsyncedCount[P any](records []Record[P]) int {
	count := 0
	for _, rec := range records {
		if !rec.Synced {
			count++
		}
	}
	return count
}
