package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/creatorsync/creatorsync/internal/creator"
)

// Timeline lists upcoming milestones, soonest first.
func (a *App) Timeline(ctx context.Context) error {
	records := a.workspace.Timeline.Records(ctx)
	for _, rec := range creator.UpcomingMilestones(records, time.Now()) {
		fmt.Printf("%s %s  %s  %s\n",
			syncMark(rec.Synced), rec.ID, rec.Payload.Due.Format("2006-01-02"), rec.Payload.Title)
	}
	return nil
}

// AddMilestone prompts for a title and due date and creates the record.
func (a *App) AddMilestone(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Milestone title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	dueText, err := GetSimpleText(a.reader, "Due date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	due, err := time.Parse("2006-01-02", dueText)
	if err != nil {
		log.Println("date must look like 2026-01-31")
		return err
	}

	rec, err := a.workspace.Timeline.Create(ctx, a.sess, creator.Milestone{
		Title: title,
		Due:   due,
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Added milestone %s\n", rec.ID)
	return nil
}

// CompleteMilestone marks the milestone done. This is a normal update: the
// record goes unsynced locally and is pushed best-effort.
func (a *App) CompleteMilestone(ctx context.Context, id string) error {
	_, err := a.workspace.Timeline.Update(ctx, a.sess, id, func(m *creator.Milestone) {
		m.Done = true
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Done")
	return nil
}
