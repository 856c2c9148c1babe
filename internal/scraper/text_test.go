package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Backend Engineer", "Backend Engineer"},
		{"surrounding whitespace", "  Backend Engineer \n", "Backend Engineer"},
		{"collapses runs", "Backend \n\t Engineer", "Backend Engineer"},
		{"non-breaking space", "Backend\u00a0Engineer", "Backend Engineer"},
		{"zero-width joiner stripped", "Back\u200dend", "Backend"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
