package scraper

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// scraped innerText carries zero-width/format runes and non-breaking spaces
var textCleaner = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))

// CleanText normalizes a scraped text fragment: NFC, format runes stripped,
// whitespace collapsed to single spaces.
func CleanText(s string) string {
	out, _, err := transform.String(textCleaner, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "\u00a0", " ")
	return strings.Join(strings.Fields(out), " ")
}
