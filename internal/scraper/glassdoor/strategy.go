// Second platform variant. Glassdoor ids come from the card's data attribute
// or the jobListingId query param; the enrichment surface is smaller than
// LinkedIn's, so several Details fields legitimately stay empty.

package glassdoor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-jobradar-automation/internal/browser"
	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/models"
	"go-jobradar-automation/internal/platform"
	"go-jobradar-automation/internal/scraper"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const optionalFieldTimeoutMs = 1500

var listingIDRegex = regexp.MustCompile(`jobListingId=(\d+)`)

type Strategy struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Strategy {
	return &Strategy{cfg: cfg}
}

func (s *Strategy) Platform() string {
	return platform.Glassdoor
}

// ExtractJobID resolves the numeric listing id from a data attribute value or
// a listing URL. Unrecognized forms yield no identifier.
func ExtractJobID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if m := listingIDRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	//bare numeric attribute value
	if ok, _ := regexp.MatchString(`^\d+$`, s); ok {
		return s
	}
	return ""
}

func (s *Strategy) ExtractBasic(card playwright.Locator, opts scraper.Options) (*models.Record, error) {
	link := card.Locator(`a[data-test="job-link"], a.JobCard_jobTitle`).First()
	href, err := link.GetAttribute("href", playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	if err != nil || href == "" {
		return nil, fmt.Errorf("card has no job link")
	}
	if !strings.HasPrefix(href, "http") {
		href = "https://www.glassdoor.com" + href
	}

	id := ""
	if attr, err := card.GetAttribute("data-jobid", playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		id = ExtractJobID(attr)
	}
	if id == "" {
		id = ExtractJobID(href)
	}
	if id == "" {
		return nil, fmt.Errorf("could not derive job id from %q", href)
	}

	title, err := link.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	if err != nil || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("card %s has no title", id)
	}

	rec := &models.Record{
		ID:        id,
		Title:     scraper.CleanText(title),
		URL:       strings.SplitN(href, "?", 2)[0],
		ScrapedAt: time.Now().UTC(),
		Source: models.Source{
			Platform: platform.Glassdoor,
			Type:     "search",
			Category: opts.Category,
		},
	}

	if name, err := card.Locator(`[data-test="employer-name"], .EmployerProfile_employerName`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.Organization.Name = scraper.CleanText(name)
	}

	if loc, err := card.Locator(`[data-test="emp-location"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.Location = scraper.CleanText(loc)
	}

	if age, err := card.Locator(`[data-test="job-age"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.PublishedAt = scraper.ParsePostedTime("", age, time.Now().UTC())
	}

	if salary, err := card.Locator(`[data-test="detailSalary"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.Details.Salary = scraper.CleanText(salary)
	}

	return rec, nil
}

func (s *Strategy) ExtractDetail(ctx context.Context, pages scraper.PageOpener, rec models.Record) models.Record {
	page, err := pages.NewPage()
	if err != nil {
		zap.S().Warnw("could not open detail page", "id", rec.ID, "err", err)
		return rec
	}
	defer page.Close()

	var navErr error
	for attempt := 0; attempt < s.cfg.RetryAttempts; attempt++ {
		if ctx.Err() != nil {
			return rec
		}
		if attempt > 0 {
			browser.RandomDelay(1000*attempt, 2000*attempt)
		}
		_, navErr = page.Goto(rec.URL, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(float64(s.cfg.RequestTimeoutMs)),
		})
		if navErr == nil {
			break
		}
	}
	if navErr != nil {
		zap.S().Debugw("detail navigation failed, keeping basic record", "id", rec.ID, "err", navErr)
		return rec
	}
	browser.RandomDelay(1000, 3000)

	enriched := rec

	if desc, err := page.Locator(`[data-test="jobDescription"], .JobDetails_jobDescription`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Description = strings.TrimSpace(desc)
	}

	if sector, err := page.Locator(`[data-test="employer-industry"]`).First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Details.Sector = scraper.CleanText(sector)
	}

	return enriched
}
