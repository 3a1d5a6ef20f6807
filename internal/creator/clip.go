package creator

import "github.com/creatorsync/creatorsync/internal/engine"

// ClipStatus classifies where a clip sits in the editing pipeline.
type ClipStatus string

const (
	ClipStatusDraft     ClipStatus = "draft"
	ClipStatusEditing   ClipStatus = "editing"
	ClipStatusPublished ClipStatus = "published"
)

// Clip describes one short-form video clip. MediaKey references the uploaded
// source file in object storage and may be empty while the clip is
// metadata-only.
type Clip struct {
	Title           string     `json:"title"`
	Status          ClipStatus `json:"status"`
	DurationSeconds int        `json:"duration_seconds"`
	MediaKey        string     `json:"media_key,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
}

// ClipsByStatus filters the merged view down to clips in the given status,
// preserving order.
func ClipsByStatus(records []engine.Record[Clip], status ClipStatus) []engine.Record[Clip] {
	var result []engine.Record[Clip]
	for _, rec := range records {
		if rec.Payload.Status == status {
			result = append(result, rec)
		}
	}
	return result
}
