package creator

import "github.com/creatorsync/creatorsync/internal/engine"

// SavedContent is a saved draft or snippet — captions, scripts, post ideas.
type SavedContent struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags,omitempty"`
}

// ContentByTag filters the merged view down to items carrying tag,
// preserving order.
func ContentByTag(records []engine.Record[SavedContent], tag string) []engine.Record[SavedContent] {
	var result []engine.Record[SavedContent]
	for _, rec := range records {
		for _, t := range rec.Payload.Tags {
			if t == tag {
				result = append(result, rec)
				break
			}
		}
	}
	return result
}
