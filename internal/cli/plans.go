package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/creatorsync/creatorsync/internal/creator"
)

// Plans lists the current local view of the product-plan collection.
func (a *App) Plans(ctx context.Context) error {
	for _, rec := range a.workspace.Plans.Records(ctx) {
		fmt.Printf("%s %s  %-9s $%.2f  %s\n",
			syncMark(rec.Synced), rec.ID, rec.Payload.Stage, float64(rec.Payload.PriceCents)/100, rec.Payload.Name)
	}
	return nil
}

// AddPlan prompts for plan fields and creates the record.
func (a *App) AddPlan(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Product name", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	priceText, err := GetSimpleText(a.reader, "Price in cents", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	price, err := strconv.ParseInt(priceText, 10, 64)
	if err != nil {
		log.Println("price must be a number")
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes", os.Stdout)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	rec, err := a.workspace.Plans.Create(ctx, a.sess, creator.ProductPlan{
		Name:       name,
		Stage:      creator.PlanStageIdea,
		PriceCents: price,
		Notes:      notes,
	})
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Printf("Added plan %s\n", rec.ID)
	return nil
}
