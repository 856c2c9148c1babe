package dedup

import (
	mapset "github.com/deckarep/golang-set/v2"

	"go-jobradar-automation/internal/models"
)

// FilterNew returns the subset of scraped whose id is absent from existing,
// preserving scraped's relative order. Pure function, exact string match on
// id, no fuzzy matching.
func FilterNew(scraped, existing []models.Record) []models.Record {
	seen := mapset.NewThreadUnsafeSetWithSize[string](len(existing))
	for _, rec := range existing {
		seen.Add(rec.ID)
	}

	out := make([]models.Record, 0, len(scraped))
	for _, rec := range scraped {
		if seen.Contains(rec.ID) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
