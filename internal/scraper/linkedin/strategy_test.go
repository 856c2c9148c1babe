package linkedin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/models"
)

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"entity urn", "urn:li:jobPosting:3544610012", "3544610012"},
		{"view url with query", "https://x.test/jobs/view/3544610012?ref=a", "3544610012"},
		{"view url plain", "https://www.linkedin.com/jobs/view/99", "99"},
		{"urn with whitespace", "  urn:li:jobPosting:42  ", "42"},
		{"unrelated url", "https://x.test/other", ""},
		{"urn wrong entity", "urn:li:company:123", ""},
		{"urn non-numeric tail", "urn:li:jobPosting:abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJobID(tt.in))
		})
	}
}

func TestApplyCriterion(t *testing.T) {
	var d models.Details

	applyCriterion(&d, "Seniority level", "Mid-Senior level")
	applyCriterion(&d, "Employment type", "Full-time")
	applyCriterion(&d, "Industries", "Software Development")
	applyCriterion(&d, "Job function", "Engineering") //unmapped label is ignored

	assert.Equal(t, "Mid-Senior level", d.ExperienceLevel)
	assert.Equal(t, "Full-time", d.ContractType)
	assert.Equal(t, "Software Development", d.Sector)
	assert.Empty(t, d.WorkArrangement)
}

type failingOpener struct{}

func (failingOpener) NewPage() (playwright.Page, error) {
	return nil, errors.New("browser gone")
}

func TestExtractDetail_FallbackKeepsBasicRecord(t *testing.T) {
	s := New(&config.Config{RetryAttempts: 1, RequestTimeoutMs: 100})

	published := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rec := models.Record{
		ID:          "3544610012",
		Title:       "Backend Engineer",
		URL:         "https://www.linkedin.com/jobs/view/3544610012",
		Location:    "Madrid",
		PublishedAt: &published,
		ScrapedAt:   time.Now().UTC(),
		Source:      models.Source{Platform: "linkedin", Type: "search", Category: "engineering"},
		Organization: models.Organization{
			Name: "Acme",
			URL:  "https://www.linkedin.com/company/acme",
		},
	}

	got := s.ExtractDetail(context.Background(), failingOpener{}, rec)

	//no partial enrichment: the input comes back field-for-field
	assert.Equal(t, rec, got)
}

func TestFirstWorkplaceType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"remote", "Senior Gopher · Remote · 34 applicants", "Remote"},
		{"hybrid", "Backend Engineer Hybrid Madrid", "Hybrid"},
		{"on-site", "On-site role in Berlin", "On-site"},
		{"vocabulary order wins", "Hybrid position, partially Remote", "Remote"},
		{"none", "Backend Engineer, Madrid", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstWorkplaceType(tt.text))
		})
	}
}
