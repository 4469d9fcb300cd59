package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "Gift Ideas", "gift-ideas"},
		{"punctuation and dash", "Hello, World! — 2025", "hello-world-2025"},
		{"leading and trailing junk", "  --Spring Sale--  ", "spring-sale"},
		{"consecutive separators", "One   &   Two", "one-two"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"uppercase", "LOUD TITLE", "loud-title"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}
