package models

import (
	"time"
)

// Source identifies where a record came from.
type Source struct {
	Platform string `json:"platform"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// Organization is the posting company. ID is filled in by the store on insert.
type Organization struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	ID   string `json:"id"`
}

// Details holds the platform-dependent enrichment fields. Absent fields stay
// empty strings so downstream consumers never see missing keys.
type Details struct {
	ContractType    string `json:"contract_type"`
	ExperienceLevel string `json:"experience_level"`
	WorkArrangement string `json:"work_arrangement"`
	Salary          string `json:"salary"`
	Sector          string `json:"sector"`
	Applicants      string `json:"applicants"`
}

// Record is one scraped job posting. The same struct carries both the basic
// form (fresh off a listing card) and the enriched form (after a detail-page
// visit); enrichment always produces a new value.
type Record struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	URL          string       `json:"url"`
	Location     string       `json:"location"`
	PublishedAt  *time.Time   `json:"published_at"` //nil when the posted time could not be parsed
	ScrapedAt    time.Time    `json:"scraped_at"`
	Source       Source       `json:"source"`
	Organization Organization `json:"organization"`
	Description  string       `json:"description"`
	Details      Details      `json:"details"`
}

// SearchConfiguration is one configured listing URL to crawl.
type SearchConfiguration struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
	Source   string `json:"source"`
	Active   bool   `json:"active"`
}
