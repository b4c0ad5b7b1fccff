package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"customer", "custmer", 1},
		{"dimensionValue", "dimensionValues", 1},
		{"straße", "strasse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s1, tt.s2))
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s2, tt.s1))
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"customer", "customerFinancialDetail", "vendor", "dimensionValue", "G_LBudgetEntries"}

	tests := []struct {
		name     string
		target   string
		opts     *FuzzyMatchOptions
		expected []string
	}{
		{"typo", "custmer", nil, []string{"customer"}},
		{"case insensitive", "Customer", nil, []string{"customer"}},
		{"case sensitive", "VENDOR", &FuzzyMatchOptions{CaseSensitive: true}, []string{}},
		{"no match", "salesInvoice", nil, []string{}},
		{"underscore", "GLBudgetEntries", nil, []string{"G_LBudgetEntries"}},
		{"wider distance", "vend", &FuzzyMatchOptions{MaxDistance: 2}, []string{"vendor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindSimilar(tt.target, candidates, tt.opts))
		})
	}
}

func TestFindSimilar_OrderAndLimit(t *testing.T) {
	candidates := []string{"abcd", "abc", "abce", "abcf", "ab"}

	// closest first, ties in candidate order
	assert.Equal(t, []string{"abc", "abcd", "abce"}, FindSimilar("abc", candidates, nil))
	assert.Equal(t, []string{"abc"}, FindSimilar("abc", candidates, &FuzzyMatchOptions{MaxSuggestions: 1}))
}
