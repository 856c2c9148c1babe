// Define an interface for all platform extraction strategies
// Ensure consistency

package scraper

import (
	"context"

	"go-jobradar-automation/internal/models"

	"github.com/playwright-community/playwright-go"
)

// PageOpener hands out isolated pages inside the crawl's shared browsing
// context. Satisfied by browser.Session.
type PageOpener interface {
	NewPage() (playwright.Page, error)
}

// Options control one listing URL's extraction pass.
type Options struct {
	//Detailed enables the per-record detail-page visit
	Detailed bool
	//Category tags source metadata on every extracted record
	Category string
}

// Strategy is the uniform extraction contract, one implementation per
// platform. Selected once via platform.Detect and held for the whole URL.
type Strategy interface {
	Platform() string

	//ExtractBasic reads a fixed set of fields from one rendered listing card.
	//A missing required field fails the whole card: the caller logs, drops
	//this one item and continues with the rest of the batch.
	ExtractBasic(card playwright.Locator, opts Options) (*models.Record, error)

	//ExtractDetail visits rec's detail page and returns an enriched copy.
	//Enrichment is additive and non-destructive: on any navigation/timeout
	//error the original rec comes back unchanged.
	ExtractDetail(ctx context.Context, pages PageOpener, rec models.Record) models.Record
}
