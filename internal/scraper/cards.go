package scraper

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

// CollectCards resolves the listing item handles for a selector with
// comma-separated alternates. Alternates are tried in order and the first
// one with matches wins: on markup where one alternate nests inside another,
// a plain CSS union would hand back every posting twice.
func CollectCards(page playwright.Page, selector string) ([]playwright.Locator, error) {
	for _, alt := range selectorAlternates(selector) {
		cards, err := page.Locator(alt).All()
		if err != nil {
			return nil, err
		}
		if len(cards) > 0 {
			return cards, nil
		}
	}
	return nil, nil
}

func selectorAlternates(selector string) []string {
	parts := strings.Split(selector, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
