package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorAlternates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "div.job-search-card", []string{"div.job-search-card"}},
		{"two alternates", "div.job-search-card, ul.results li", []string{"div.job-search-card", "ul.results li"}},
		{"extra whitespace", "  a.one ,  b.two  ", []string{"a.one", "b.two"}},
		{"trailing comma", "a.one,", []string{"a.one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectorAlternates(tt.in))
		})
	}
}
