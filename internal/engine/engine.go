// Crawl orchestration: per-URL and multi-URL scrape procedures, item caps,
// and per-card/page/URL failure isolation. One browser session per
// invocation, never reused.

package engine

import (
	"context"
	"fmt"
	"sync"

	"go-jobradar-automation/internal/browser"
	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/models"
	"go-jobradar-automation/internal/platform"
	"go-jobradar-automation/internal/pool"
	"go-jobradar-automation/internal/scraper"
	"go-jobradar-automation/utils"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// session is what the engine needs from a browser session; browser.Session
// satisfies it.
type session interface {
	scraper.PageOpener
	Close() error
}

type Engine struct {
	cfg        *config.Config
	strategies map[string]scraper.Strategy
	limiter    *pool.Limiter
	pager      *scraper.PaginationDriver
	hosts      *HostLimiter
	shots      *utils.ScreenshotDebugger

	//seams bound to the real implementations in New; tests swap them to run
	//the multi-URL sequencing without a browser
	open       func() (session, error)
	scrapeOne  func(ctx context.Context, sess session, url string, opts scraper.Options) []models.Record
	interDelay func()
}

func New(cfg *config.Config, strategies []scraper.Strategy) *Engine {
	byPlatform := make(map[string]scraper.Strategy, len(strategies))
	for _, s := range strategies {
		byPlatform[s.Platform()] = s
	}

	e := &Engine{
		cfg:        cfg,
		strategies: byPlatform,
		limiter:    pool.NewLimiter(cfg.DetailConcurrency),
		pager:      scraper.NewPaginationDriver(),
		hosts:      NewHostLimiter(cfg.HostRatePerSec, 1),
		shots:      utils.NewScreenshotDebugger(cfg.ScreenshotsPath),
	}
	e.open = e.openSession
	e.scrapeOne = e.scrapeURL
	e.interDelay = func() { browser.RandomDelay(5000, 10000) }
	return e
}

func (e *Engine) openSession() (session, error) {
	platforms := make([]string, 0, len(e.strategies))
	for p := range e.strategies {
		platforms = append(platforms, p)
	}
	return browser.Open(browser.Options{
		Headless:    e.cfg.Headless,
		CookiesPath: e.cfg.CookiesPath,
		Platforms:   platforms,
	})
}

// ScrapeMultipleUrls is the sole crawl entry point. It opens one browser
// session for the whole call, walks urls strictly in order, and enforces the
// global item cap with exact truncation and an early stop. The session is
// closed on every path; only session acquisition failure is fatal.
func (e *Engine) ScrapeMultipleUrls(ctx context.Context, urls []string, opts scraper.Options) ([]models.Record, error) {
	run := uuid.NewString()[:8]
	log := zap.S().With("run", run)
	log.Infow("🚀 starting crawl", "urls", len(urls), "detailed", opts.Detailed)

	sess, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("could not acquire browser session: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Warnw("session close failed", "err", err)
		}
	}()

	var all []models.Record
	for i, url := range urls {
		if ctx.Err() != nil {
			log.Infow("crawl cancelled", "processed", i)
			break
		}

		recs := e.scrapeOne(ctx, sess, url, opts)
		all = append(all, recs...)
		log.Infow("url done", "url", url, "items", len(recs), "total", len(all))

		if e.cfg.TotalItemsLimit > 0 && len(all) >= e.cfg.TotalItemsLimit {
			all = all[:e.cfg.TotalItemsLimit]
			log.Infow("total item limit reached, stopping early", "limit", e.cfg.TotalItemsLimit)
			break
		}

		if i < len(urls)-1 {
			e.interDelay()
		}
	}

	log.Infow("🏁 crawl finished", "records", len(all))
	return all, nil
}

// scrapeURL handles one listing URL. Every failure inside it degrades the
// result set instead of propagating: an unsupported source, a navigation
// timeout or a missing listing only cost this URL's items.
func (e *Engine) scrapeURL(ctx context.Context, sess session, url string, opts scraper.Options) []models.Record {
	log := zap.S().With("url", url)

	desc, ok := platform.Detect(url)
	if !ok {
		log.Warnw("unsupported source, skipping")
		return nil
	}
	strat, ok := e.strategies[desc.Platform]
	if !ok {
		log.Warnw("no strategy registered for platform", "platform", desc.Platform)
		return nil
	}

	page, err := sess.NewPage()
	if err != nil {
		log.Warnw("could not open listing page", "err", err)
		return nil
	}
	defer page.Close()

	if err := e.hosts.WaitURL(ctx, url); err != nil {
		log.Warnw("rate-limit wait interrupted, skipping url", "err", err)
		return nil
	}

	if err := e.navigateWithRetry(ctx, page, url); err != nil {
		log.Warnw("listing navigation failed, skipping url", "err", err)
		return nil
	}

	if _, err := page.WaitForSelector(desc.ListingSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(e.cfg.RequestTimeoutMs)),
	}); err != nil {
		log.Warnw("listing never appeared, skipping url", "err", err)
		e.shots.CaptureAndLog(page, desc.Platform+"-listing-missing", "listing selector wait timed out")
		return nil
	}

	browser.RandomDelay(1000, 2000)
	_ = browser.MouseJiggle(page)

	if err := e.pager.Exhaust(page, desc); err != nil {
		//pagination trouble still leaves whatever already rendered
		log.Debugw("pagination stopped early", "err", err)
	}

	cards, err := scraper.CollectCards(page, desc.ListingSelector)
	if err != nil {
		log.Warnw("could not collect listing items", "err", err)
		return nil
	}
	cards = limitCards(cards, e.cfg.MaxItemsPerURL)
	log.Infow("📦 listing collected", "platform", desc.Platform, "cards", len(cards))

	//basic extraction is sequential: card handles share the listing page
	basics := make([]models.Record, 0, len(cards))
	for _, card := range cards {
		rec, err := strat.ExtractBasic(card, opts)
		if err != nil {
			log.Debugw("card dropped", "err", err)
			continue
		}
		basics = append(basics, *rec)
	}

	if !opts.Detailed || len(basics) == 0 {
		return basics
	}
	return e.enrichAll(ctx, sess, strat, basics)
}

// enrichAll runs detail extraction for each basic record through the bounded
// limiter. Results are reassembled positionally, so the output order matches
// basic-extraction order no matter when each task completes.
func (e *Engine) enrichAll(ctx context.Context, sess session, strat scraper.Strategy, basics []models.Record) []models.Record {
	results := make([]models.Record, len(basics))

	var wg sync.WaitGroup
	for i := range basics {
		i, rec := i, basics[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			//fall back to the basic record when a slot never frees
			results[i] = rec
			if err := e.hosts.WaitURL(ctx, rec.URL); err != nil {
				return
			}
			_ = e.limiter.Run(ctx, func() {
				results[i] = strat.ExtractDetail(ctx, sess, rec)
			})
		}()
	}
	wg.Wait()

	return results
}

func (e *Engine) navigateWithRetry(ctx context.Context, page playwright.Page, url string) error {
	var lastErr error
	for attempt := 0; attempt < e.cfg.RetryAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt > 0 {
			browser.RandomDelay(2000*attempt, 4000*attempt)
		}
		_, lastErr = page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(e.cfg.RequestTimeoutMs)),
		})
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func limitCards(cards []playwright.Locator, max int) []playwright.Locator {
	if max > 0 && len(cards) > max {
		return cards[:max]
	}
	return cards
}
