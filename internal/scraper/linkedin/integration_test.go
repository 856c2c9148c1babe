package linkedin

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/platform"
	"go-jobradar-automation/internal/scraper"
)

//helper start mock browser
func setupPlaywright(t *testing.T) (*playwright.Playwright, playwright.Browser, playwright.Page) {
	t.Helper()
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("could not launch playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("could not launch browser: %v", err)
	}
	page, err := browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return pw, browser, page
}

const mockListingHTML = `<html><body>
<ul class="jobs-search__results-list">
  <li>
    <div class="job-search-card" data-entity-urn="urn:li:jobPosting:3544610012">
      <a class="base-card__full-link" href="https://www.linkedin.com/jobs/view/3544610012?refId=abc&trackingId=xyz"></a>
      <h3 class="base-search-card__title">Backend Engineer (Go)</h3>
      <h4 class="base-search-card__subtitle"><a href="https://www.linkedin.com/company/acme?trk=x">Acme Corp</a></h4>
      <span class="job-search-card__location">Madrid, Spain</span>
      <time datetime="2026-08-20">1 week ago</time>
    </div>
  </li>
  <li>
    <div class="job-search-card">
      <a class="base-card__full-link" href="https://www.linkedin.com/jobs/collections/recommended"></a>
      <h3 class="base-search-card__title">Card without a resolvable id</h3>
    </div>
  </li>
</ul>
</body></html>`

func TestExtractBasic_MockListing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	pw, browser, page := setupPlaywright(t)
	defer pw.Stop()
	defer browser.Close()

	require.NoError(t, page.SetContent(mockListingHTML))

	desc, ok := platform.Lookup(platform.LinkedIn)
	require.True(t, ok)

	//the card div nests inside each result li; alternate resolution must
	//yield one handle per posting, not one per matching alternate
	cards, err := scraper.CollectCards(page, desc.ListingSelector)
	require.NoError(t, err)
	require.Len(t, cards, 2)

	s := New(&config.Config{RetryAttempts: 1, RequestTimeoutMs: 5000})
	opts := scraper.Options{Category: "engineering"}

	rec, err := s.ExtractBasic(cards[0], opts)
	require.NoError(t, err)
	assert.Equal(t, "3544610012", rec.ID)
	assert.Equal(t, "Backend Engineer (Go)", rec.Title)
	//tracking params stripped off the canonical URL
	assert.Equal(t, "https://www.linkedin.com/jobs/view/3544610012", rec.URL)
	assert.Equal(t, "Acme Corp", rec.Organization.Name)
	assert.Equal(t, "https://www.linkedin.com/company/acme", rec.Organization.URL)
	assert.Equal(t, "Madrid, Spain", rec.Location)
	assert.Equal(t, "engineering", rec.Source.Category)
	require.NotNil(t, rec.PublishedAt)
	assert.Equal(t, "2026-08-20", rec.PublishedAt.Format("2006-01-02"))

	//second card has no derivable id: dropped, not a defect
	_, err = s.ExtractBasic(cards[1], opts)
	assert.Error(t, err)
}
