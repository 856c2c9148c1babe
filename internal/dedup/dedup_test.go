package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-jobradar-automation/internal/models"
)

func recs(ids ...string) []models.Record {
	out := make([]models.Record, len(ids))
	for i, id := range ids {
		out[i] = models.Record{ID: id, Title: "t-" + id}
	}
	return out
}

func ids(in []models.Record) []string {
	out := make([]string, len(in))
	for i, r := range in {
		out[i] = r.ID
	}
	return out
}

func TestFilterNew(t *testing.T) {
	tests := []struct {
		name     string
		scraped  []models.Record
		existing []models.Record
		want     []string
	}{
		{"all new", recs("a", "b", "c"), nil, []string{"a", "b", "c"}},
		{"all seen", recs("a", "b"), recs("b", "a"), []string{}},
		{"mixed keeps order", recs("a", "b", "c", "d"), recs("b", "d"), []string{"a", "c"}},
		{"empty scraped", nil, recs("a"), []string{}},
		{"exact match only", recs("123", "0123"), recs("123"), []string{"0123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterNew(tt.scraped, tt.existing)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterNew_Idempotent(t *testing.T) {
	scraped := recs("a", "b", "c", "d", "e")
	existing := recs("b", "e")

	once := FilterNew(scraped, existing)
	twice := FilterNew(once, existing)
	assert.Equal(t, once, twice)
}

func TestFilterNew_DoesNotMutateInput(t *testing.T) {
	scraped := recs("a", "b")
	existing := recs("a")

	_ = FilterNew(scraped, existing)
	assert.Equal(t, []string{"a", "b"}, ids(scraped))
}
