// Package creator defines the domain payloads synchronized by the engine —
// clips, product plans, saved content and launch-timeline milestones — and
// the derived read-only views computed over them.
package creator

import (
	"context"

	"github.com/creatorsync/creatorsync/internal/engine"
	"github.com/creatorsync/creatorsync/internal/localstore"
	"github.com/creatorsync/creatorsync/internal/logging"
	"github.com/creatorsync/creatorsync/internal/remote"
	"github.com/creatorsync/creatorsync/internal/session"
)

// Local storage keys and remote collection names, one pair per domain.
const (
	ClipsKey        = "creator.clips"
	ClipsCollection = "clips"

	PlansKey        = "creator.plans"
	PlansCollection = "product_plans"

	ContentKey        = "creator.content"
	ContentCollection = "saved_content"

	TimelineKey        = "creator.timeline"
	TimelineCollection = "timeline_milestones"
)

// Workspace bundles one engine per domain over shared local and remote
// stores. All four engines enforce the same offline-first invariants.
type Workspace struct {
	Clips    *engine.Engine[Clip]
	Plans    *engine.Engine[ProductPlan]
	Content  *engine.Engine[SavedContent]
	Timeline *engine.Engine[Milestone]
}

// NewWorkspace instantiates the per-domain engines.
func NewWorkspace(local localstore.Store, rs remote.Store, logger logging.Logger) *Workspace {
	return &Workspace{
		Clips:    engine.New[Clip](ClipsKey, ClipsCollection, local, rs, logger),
		Plans:    engine.New[ProductPlan](PlansKey, PlansCollection, local, rs, logger),
		Content:  engine.New[SavedContent](ContentKey, ContentCollection, local, rs, logger),
		Timeline: engine.New[Milestone](TimelineKey, TimelineCollection, local, rs, logger),
	}
}

// LoadAll runs the merge-on-load pass for every domain. Called on startup
// and on identity change.
func (w *Workspace) LoadAll(ctx context.Context, sess *session.Session) error {
	if _, err := w.Clips.LoadAndMerge(ctx, sess); err != nil {
		return err
	}
	if _, err := w.Plans.LoadAndMerge(ctx, sess); err != nil {
		return err
	}
	if _, err := w.Content.LoadAndMerge(ctx, sess); err != nil {
		return err
	}
	if _, err := w.Timeline.LoadAndMerge(ctx, sess); err != nil {
		return err
	}
	return nil
}

// SyncAll runs the bulk-retry pass for every domain sequentially and returns
// the combined report.
func (w *Workspace) SyncAll(ctx context.Context, sess *session.Session) (engine.SyncReport, error) {
	var total engine.SyncReport

	reports := make([]engine.SyncReport, 0, 4)

	r, err := w.Clips.SyncAll(ctx, sess)
	if err != nil {
		return total, err
	}
	reports = append(reports, r)

	r, err = w.Plans.SyncAll(ctx, sess)
	if err != nil {
		return total, err
	}
	reports = append(reports, r)

	r, err = w.Content.SyncAll(ctx, sess)
	if err != nil {
		return total, err
	}
	reports = append(reports, r)

	r, err = w.Timeline.SyncAll(ctx, sess)
	if err != nil {
		return total, err
	}
	reports = append(reports, r)

	for _, r := range reports {
		total.Pushed += r.Pushed
		total.Failed += r.Failed
	}
	return total, nil
}

// PendingCounts reports, per domain, how many records still await remote
// confirmation.
func (w *Workspace) PendingCounts(ctx context.Context) map[string]int {
	return map[string]int{
		ClipsCollection:    w.Clips.UnsyncedCount(ctx),
		PlansCollection:    w.Plans.UnsyncedCount(ctx),
		ContentCollection:  w.Content.UnsyncedCount(ctx),
		TimelineCollection: w.Timeline.UnsyncedCount(ctx),
	}
}
