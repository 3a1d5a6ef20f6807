package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/creatorsync/creatorsync/internal/creator"
)

func syncMark(synced bool) string {
	if synced {
		return " "
	}
	return "*"
}

// Clips lists the current local view of the clip collection. Records still
// awaiting remote confirmation are marked with '*'.
func (a *App) Clips(ctx context.Context) error {
	for _, rec := range a.workspace.Clips.Records(ctx) {
		fmt.Printf("%s %s  %-10s %4ds  %s\n",
			syncMark(rec.Synced), rec.ID, rec.Payload.Status, rec.Payload.DurationSeconds, rec.Payload.Title)
	}
	return nil
}

// AddClip prompts for clip fields, optionally uploads the source file, and
// creates the record. Creation succeeds locally even when the upload or the
// remote push fails.
func (a *App) AddClip(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Clip title", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	durationText, err := GetSimpleText(a.reader, "Duration in seconds", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	duration, err := strconv.Atoi(durationText)
	if err != nil {
		log.Println("duration must be a number")
		return err
	}

	mediaPath, err := GetSimpleText(a.reader, "Path of source file (empty to skip)", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	clip := creator.Clip{
		Title:           title,
		Status:          creator.ClipStatusDraft,
		DurationSeconds: duration,
	}

	if mediaPath != "" && a.uploader != nil {
		key, err := a.uploader.UploadClipMedia(ctx, a.sess, mediaPath)
		if err != nil {
			log.Printf("media upload failed, clip saved without media: %v", err)
		} else {
			clip.MediaKey = key
		}
	}

	rec, err := a.workspace.Clips.Create(ctx, a.sess, clip)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Added clip %s\n", rec.ID)
	return nil
}

// DeleteClip removes the clip locally and best-effort remotely.
func (a *App) DeleteClip(ctx context.Context, id string) error {
	if err := a.workspace.Clips.Remove(ctx, a.sess, id); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Deleted")
	return nil
}
