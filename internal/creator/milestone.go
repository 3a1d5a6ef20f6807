package creator

import (
	"sort"
	"time"

	"github.com/creatorsync/creatorsync/internal/engine"
)

// Milestone is one entry on the launch timeline.
type Milestone struct {
	Title string    `json:"title"`
	Due   time.Time `json:"due"`
	Done  bool      `json:"done"`
}

// UpcomingMilestones returns the not-yet-done milestones due at or after now,
// soonest first.
func UpcomingMilestones(records []engine.Record[Milestone], now time.Time) []engine.Record[Milestone] {
	var result []engine.Record[Milestone]
	for _, rec := range records {
		if !rec.Payload.Done && !rec.Payload.Due.Before(now) {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Payload.Due.Before(result[j].Payload.Due)
	})
	return result
}
