package linkedin

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

// optionalFieldTimeoutMs caps lookups of fields that are allowed to be
// missing; without it a short card would stall for the full default wait.
const optionalFieldTimeoutMs = 1500

var (
	urnRegex  = regexp.MustCompile(`^urn:li:jobPosting:(\d+)$`)
	viewRegex = regexp.MustCompile(`/jobs/view/(\d+)`)

	//workplace vocabulary, first match wins
	workplaceTypes = []string{"Remote", "On-site", "Hybrid"}
)

type Strategy struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Strategy {
	return &Strategy{cfg: cfg}
}

func (s *Strategy) Platform() string {
	return platform.LinkedIn
}

// ExtractJobID derives the platform-unique id from either recognized source
// form: the entity URN ("urn:li:jobPosting:<digits>") or the detail-path URL
// ("…/jobs/view/<digits>"). Any other form yields no identifier.
func ExtractJobID(s string) string {
	if m := urnRegex.FindStringSubmatch(strings.TrimSpace(s)); m != nil {
		return m[1]
	}
	if m := viewRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

func (s *Strategy) ExtractBasic(card playwright.Locator, opts scraper.Options) (*models.Record, error) {
	link := card.Locator(`a.base-card__full-link, a[href*="/jobs/view/"]`).First()
	href, err := link.GetAttribute("href", playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	if err != nil || href == "" {
		return nil, fmt.Errorf("card has no job link")
	}
	//LinkedIn hrefs carry tracking params that make one job look like many
	jobURL := strings.SplitN(href, "?", 2)[0]
	if !strings.HasPrefix(jobURL, "http") {
		jobURL = "https://www.linkedin.com" + jobURL
	}

	//prefer the entity URN, fall back to the URL path form
	id := ""
	if urn, err := card.GetAttribute("data-entity-urn", playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		id = ExtractJobID(urn)
	}
	if id == "" {
		id = ExtractJobID(jobURL)
	}
	if id == "" {
		return nil, fmt.Errorf("could not derive job id from %q", jobURL)
	}

	title, err := card.Locator("h3.base-search-card__title").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	if err != nil || strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("card %s has no title", id)
	}

	rec := &models.Record{
		ID:        id,
		Title:     scraper.CleanText(title),
		URL:       jobURL,
		ScrapedAt: time.Now().UTC(),
		Source: models.Source{
			Platform: platform.LinkedIn,
			Type:     "search",
			Category: opts.Category,
		},
	}

	//everything below is optional: absence never fails the card
	companyEl := card.Locator("h4.base-search-card__subtitle a").First()
	if name, err := companyEl.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.Organization.Name = scraper.CleanText(name)
		if companyHref, err := companyEl.GetAttribute("href"); err == nil {
			rec.Organization.URL = strings.SplitN(companyHref, "?", 2)[0]
		}
	}

	if loc, err := card.Locator(".job-search-card__location").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		rec.Location = scraper.CleanText(loc)
	}

	timeEl := card.Locator("time").First()
	datetimeAttr, _ := timeEl.GetAttribute("datetime", playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	relative, _ := timeEl.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	})
	rec.PublishedAt = scraper.ParsePostedTime(datetimeAttr, relative, time.Now().UTC())

	return rec, nil
}

// ExtractDetail opens the record's detail page and reads the enrichment
// fields. All reads are individually optional; on navigation failure the
// original record comes back untouched.
func (s *Strategy) ExtractDetail(ctx context.Context, pages scraper.PageOpener, rec models.Record) models.Record {
	page, err := pages.NewPage()
	if err != nil {
		zap.S().Warnw("could not open detail page", "id", rec.ID, "err", err)
		return rec
	}
	defer page.Close()

	if err := s.navigateWithRetry(ctx, page, rec.URL); err != nil {
		zap.S().Debugw("detail navigation failed, keeping basic record", "id", rec.ID, "err", err)
		return rec
	}
	//let late JS widgets settle before reading
	browser.RandomDelay(1000, 3000)

	enriched := rec

	if desc, err := page.Locator(".show-more-less-html__markup, .description__text").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Description = strings.TrimSpace(desc)
	}

	s.readCriteria(page, &enriched.Details)

	if topcard, err := page.Locator(".top-card-layout, .topcard").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Details.WorkArrangement = firstWorkplaceType(topcard)
	}

	if applicants, err := page.Locator(".num-applicants__caption").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Details.Applicants = scraper.CleanText(applicants)
	}

	if salary, err := page.Locator(".compensation__salary, .salary").First().InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(optionalFieldTimeoutMs),
	}); err == nil {
		enriched.Details.Salary = scraper.CleanText(salary)
	}

	return enriched
}

func (s *Strategy) navigateWithRetry(ctx context.Context, page playwright.Page, url string) error {
	var lastErr error
	for attempt := 0; attempt < s.cfg.RetryAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt > 0 {
			browser.RandomDelay(1000*attempt, 2000*attempt)
		}
		_, lastErr = page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
			Timeout:   playwright.Float(float64(s.cfg.RequestTimeoutMs)),
		})
		if lastErr == nil {
			return nil
		}
	}
	return lastErr
}

// readCriteria maps the detail page's criteria list pairs onto Details by
// label keyword.
func (s *Strategy) readCriteria(page playwright.Page, details *models.Details) {
	items, err := page.Locator("li.description__job-criteria-item").All()
	if err != nil {
		return
	}
	for _, item := range items {
		label, err := item.Locator(".description__job-criteria-subheader").First().InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(optionalFieldTimeoutMs),
		})
		if err != nil {
			continue
		}
		value, err := item.Locator(".description__job-criteria-text").First().InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(optionalFieldTimeoutMs),
		})
		if err != nil {
			continue
		}
		applyCriterion(details, label, scraper.CleanText(value))
	}
}

func applyCriterion(details *models.Details, label, value string) {
	switch {
	case strings.Contains(label, "Seniority level"):
		details.ExperienceLevel = value
	case strings.Contains(label, "Employment type"):
		details.ContractType = value
	case strings.Contains(label, "Industr"): //"Industry" or "Industries"
		details.Sector = value
	}
}

func firstWorkplaceType(text string) string {
	for _, wt := range workplaceTypes {
		if strings.Contains(text, wt) {
			return wt
		}
	}
	return ""
}
