// Static per-platform descriptors and URL-based platform detection.

package platform

import (
	"fmt"
	"regexp"
)

const (
	LinkedIn  = "linkedin"
	Glassdoor = "glassdoor"
)

// Descriptor is the immutable per-platform configuration used to dispatch
// extraction behavior. Loaded once, never mutated.
type Descriptor struct {
	Platform string
	//URLPattern matches a configured source URL to this platform
	URLPattern *regexp.Regexp
	//ListingSelector identifies the repeated listing items on a search page
	ListingSelector string
	//LoadMoreSelector locates the platform's "show more"/next-page control,
	//empty when the platform only does infinite scroll
	LoadMoreSelector string
	//DetailPath builds the detail-page path for a record id
	DetailPath func(id string) string
}

// registration order matters: Detect returns the first match
var descriptors = []Descriptor{
	{
		Platform:         LinkedIn,
		URLPattern:       regexp.MustCompile(`(?i)linkedin\.com`),
		//alternates are resolved first-non-empty, never as a CSS union: the
		//guest page nests the card div inside each result li, and a union
		//would match every posting twice
		ListingSelector:  "div.job-search-card, ul.jobs-search__results-list li",
		LoadMoreSelector: "button.infinite-scroller__show-more-button",
		DetailPath: func(id string) string {
			return fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", id)
		},
	},
	{
		Platform:         Glassdoor,
		URLPattern:       regexp.MustCompile(`(?i)glassdoor\.(com|es|de|fr)`),
		ListingSelector:  "li[data-test=\"jobListing\"]",
		LoadMoreSelector: "button[data-test=\"load-more\"]",
		DetailPath: func(id string) string {
			return fmt.Sprintf("https://www.glassdoor.com/job-listing/%s", id)
		},
	},
}

// Detect tests url against each descriptor in registration order and returns
// the first match. ok=false means "unsupported source": the caller must skip
// the URL and report it, never abort the run.
func Detect(url string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.URLPattern.MatchString(url) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Lookup returns the descriptor for a known platform id.
func Lookup(platform string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Platform == platform {
			return d, true
		}
	}
	return Descriptor{}, false
}
