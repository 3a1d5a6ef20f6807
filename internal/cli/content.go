package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/creatorsync/creatorsync/internal/creator"
)

// Content lists the current local view of the saved-content collection.
func (a *App) Content(ctx context.Context) error {
	for _, rec := range a.workspace.Content.Records(ctx) {
		fmt.Printf("%s %s  %s [%s]\n",
			syncMark(rec.Synced), rec.ID, rec.Payload.Title, strings.Join(rec.Payload.Tags, ", "))
	}
	return nil
}

// AddContent prompts for a title, body and tags and creates the record.
func (a *App) AddContent(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	body, err := GetMultiline(a.reader, "Body", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	tagsText, err := GetSimpleText(a.reader, "Tags (comma-separated, empty to skip)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	var tags []string
	for _, t := range strings.Split(tagsText, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	rec, err := a.workspace.Content.Create(ctx, a.sess, creator.SavedContent{
		Title: title,
		Body:  body,
		Tags:  tags,
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Saved %s\n", rec.ID)
	return nil
}
