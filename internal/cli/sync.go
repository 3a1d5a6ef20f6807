package cli

import (
	"context"
	"fmt"
	"log"
)

// Sync runs the bulk-retry pass for every domain, then reports progress.
func (a *App) Sync(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.config.RemoteTimeout)
	defer cancel()

	report, err := a.workspace.SyncAll(ctx, a.sess)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Synced: %d pushed, %d still pending\n", report.Pushed, report.Failed)
	return nil
}

// Status prints per-domain pending counts. Purely advisory — pending records
// never block further local work.
func (a *App) Status(ctx context.Context) error {
	counts := a.workspace.PendingCounts(ctx)
	total := 0
	for _, n := range counts {
		total += n
	}

	if total == 0 {
		fmt.Println("All records synced")
		return nil
	}

	fmt.Printf("%d records pending sync:\n", total)
	for domain, n := range counts {
		if n > 0 {
			fmt.Printf("  %-20s %d\n", domain, n)
		}
	}
	return nil
}
