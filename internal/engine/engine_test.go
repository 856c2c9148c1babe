package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/models"
	"go-jobradar-automation/internal/scraper"
)

type fakeSession struct {
	closed int
}

func (f *fakeSession) NewPage() (playwright.Page, error) { return nil, errors.New("not used") }
func (f *fakeSession) Close() error                      { f.closed++; return nil }

// newTestEngine wires an engine whose per-URL scrape yields n records per URL
// without touching a browser.
func newTestEngine(t *testing.T, cfg *config.Config, perURL int) (*Engine, *fakeSession, *[]string) {
	t.Helper()

	e := New(cfg, nil)
	sess := &fakeSession{}
	visited := &[]string{}

	e.open = func() (session, error) { return sess, nil }
	e.interDelay = func() {}
	e.scrapeOne = func(ctx context.Context, s session, url string, opts scraper.Options) []models.Record {
		*visited = append(*visited, url)
		out := make([]models.Record, perURL)
		for i := range out {
			out[i] = models.Record{ID: fmt.Sprintf("%s#%d", url, i), URL: url}
		}
		return out
	}
	return e, sess, visited
}

func testConfig() *config.Config {
	return &config.Config{
		MaxItemsPerURL:    25,
		TotalItemsLimit:   100,
		DetailConcurrency: 3,
		RequestTimeoutMs:  1000,
		RetryAttempts:     1,
		HostRatePerSec:    1000,
		ScreenshotsPath:   "/tmp/jobradar-test-screenshots",
	}
}

func TestScrapeMultipleUrls_GlobalCapTruncatesAndStops(t *testing.T) {
	cfg := testConfig()
	cfg.TotalItemsLimit = 10

	e, sess, visited := newTestEngine(t, cfg, 4)

	urls := []string{"u1", "u2", "u3", "u4", "u5"}
	recs, err := e.ScrapeMultipleUrls(context.Background(), urls, scraper.Options{Detailed: true})
	require.NoError(t, err)

	assert.Len(t, recs, 10, "accumulator truncated to exactly the limit")
	//4 + 4 = 8 < 10, third url pushes to 12 and triggers the stop
	assert.Equal(t, []string{"u1", "u2", "u3"}, *visited)
	assert.Equal(t, 1, sess.closed)
}

func TestScrapeMultipleUrls_OrderFollowsURLIteration(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig(), 2)

	recs, err := e.ScrapeMultipleUrls(context.Background(), []string{"a", "b"}, scraper.Options{})
	require.NoError(t, err)

	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"a#0", "a#1", "b#0", "b#1"}, ids)
}

func TestScrapeMultipleUrls_SessionClosedOnCancel(t *testing.T) {
	e, sess, visited := newTestEngine(t, testConfig(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recs, err := e.ScrapeMultipleUrls(ctx, []string{"u1", "u2"}, scraper.Options{})
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Empty(t, *visited)
	assert.Equal(t, 1, sess.closed)
}

func TestScrapeMultipleUrls_SessionOpenFailureIsFatal(t *testing.T) {
	e, _, _ := newTestEngine(t, testConfig(), 1)
	e.open = func() (session, error) { return nil, errors.New("no browser") }

	_, err := e.ScrapeMultipleUrls(context.Background(), []string{"u1"}, scraper.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not acquire browser session")
}

func TestLimitCards(t *testing.T) {
	cards := make([]playwright.Locator, 30)

	assert.Len(t, limitCards(cards, 25), 25)
	assert.Len(t, limitCards(cards, 40), 30)
	assert.Len(t, limitCards(cards, 0), 30, "zero means unlimited")
}

func TestEnrichAll_FallbackWhenContextCancelled(t *testing.T) {
	e := New(testConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	basics := []models.Record{{ID: "1"}, {ID: "2"}}
	got := e.enrichAll(ctx, &fakeSession{}, stubStrategy{}, basics)

	//cancelled enrichment degrades to the basic records, in order
	assert.Equal(t, basics, got)
}

type stubStrategy struct{}

func (stubStrategy) Platform() string { return "stub" }
func (stubStrategy) ExtractBasic(card playwright.Locator, opts scraper.Options) (*models.Record, error) {
	return nil, errors.New("not used")
}
func (stubStrategy) ExtractDetail(ctx context.Context, pages scraper.PageOpener, rec models.Record) models.Record {
	rec.Description = "enriched"
	return rec
}
