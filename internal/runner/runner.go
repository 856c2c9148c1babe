// Full crawl pipeline: load search configurations, crawl, dedup against the
// store, persist, report. Shared by the one-shot CLI and the server.

package runner

import (
	"context"
	"fmt"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/dedup"
	"go-jobradar-automation/internal/models"
	"go-jobradar-automation/internal/scraper"

	"go.uber.org/zap"
)

// Store is the persisted-configuration/record collaborator.
type Store interface {
	GetSearchConfigurations(ctx context.Context, activeOnly bool) ([]models.SearchConfiguration, error)
	GetExistingRecords(ctx context.Context) ([]models.Record, error)
	InsertRecords(ctx context.Context, records []models.Record) ([]models.Record, error)
}

// Crawler is the scraping engine's sole entry point.
type Crawler interface {
	ScrapeMultipleUrls(ctx context.Context, urls []string, opts scraper.Options) ([]models.Record, error)
}

// Notifier reports run outcomes. May be nil when reporting is not configured.
type Notifier interface {
	SendRunSummary(scraped, inserted []models.Record) error
	SendError(err error) error
}

type Runner struct {
	cfg      *config.Config
	store    Store
	crawler  Crawler
	notifier Notifier
}

func New(cfg *config.Config, store Store, crawler Crawler, notifier Notifier) *Runner {
	return &Runner{cfg: cfg, store: store, crawler: crawler, notifier: notifier}
}

// RunOnce executes one complete scrape-dedup-persist cycle and returns the
// newly inserted records.
func (r *Runner) RunOnce(ctx context.Context) ([]models.Record, error) {
	log := zap.S()

	configs, err := r.store.GetSearchConfigurations(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load search configurations: %w", err)
	}
	if len(configs) == 0 {
		log.Info("no active search configurations, nothing to do")
		return nil, nil
	}
	log.Infow("🔧 search configurations loaded", "count", len(configs))

	var scraped []models.Record
	for _, group := range groupByCategory(configs) {
		opts := scraper.Options{Detailed: true, Category: group.category}
		recs, err := r.crawler.ScrapeMultipleUrls(ctx, group.urls, opts)
		if err != nil {
			//only session acquisition failure reaches here; it aborts the run
			r.notify(err)
			return nil, fmt.Errorf("crawl failed for category %q: %w", group.category, err)
		}
		scraped = append(scraped, recs...)
	}

	existing, err := r.store.GetExistingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing records: %w", err)
	}

	fresh := dedup.FilterNew(scraped, existing)
	log.Infow("🔍 deduplication", "scraped", len(scraped), "new", len(fresh))

	inserted, err := r.store.InsertRecords(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("failed to insert records: %w", err)
	}

	if r.notifier != nil {
		if err := r.notifier.SendRunSummary(scraped, inserted); err != nil {
			log.Warnw("failed to send run summary", "err", err)
		}
	}

	return inserted, nil
}

func (r *Runner) notify(err error) {
	if r.notifier == nil {
		return
	}
	if sendErr := r.notifier.SendError(err); sendErr != nil {
		zap.S().Warnw("failed to send error notice", "err", sendErr)
	}
}

type categoryGroup struct {
	category string
	urls     []string
}

// groupByCategory keeps configuration order within each group and group
// order by first appearance, so crawl order stays reproducible.
func groupByCategory(configs []models.SearchConfiguration) []categoryGroup {
	index := make(map[string]int)
	var groups []categoryGroup
	for _, c := range configs {
		i, ok := index[c.Category]
		if !ok {
			i = len(groups)
			index[c.Category] = i
			groups = append(groups, categoryGroup{category: c.Category})
		}
		groups[i].urls = append(groups[i].urls, c.URL)
	}
	return groups
}
