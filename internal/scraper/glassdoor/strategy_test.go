package glassdoor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJobID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"listing url", "https://www.glassdoor.com/partner/jobListing.htm?jobListingId=100877", "100877"},
		{"bare attribute", "100877", "100877"},
		{"attribute with spaces", "  7 ", "7"},
		{"unrelated url", "https://www.glassdoor.com/about", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJobID(tt.in))
		})
	}
}
