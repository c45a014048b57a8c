package profile

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	p := Fallback("We sell inventory management software for small retail shops")

	require.NotNil(t, p)
	assert.Contains(t, p.Keywords, "inventory")
	assert.Contains(t, p.Keywords, "software")
	assert.NotContains(t, p.Keywords, "for", "short words are dropped")
	assert.NotEmpty(t, p.KeyBenefits)
	assert.NotEmpty(t, p.PainPointsSolved)
	assert.NotEmpty(t, p.MarketingAngles)
}

func TestFallback_SourceHints(t *testing.T) {
	p := Fallback("Inventory tracking for retail stores")

	// Base entrepreneurship pool plus inventory/retail specific communities
	assert.Contains(t, p.RecommendedSources, "entrepreneur")
	assert.Contains(t, p.RecommendedSources, "ecommerce")
	assert.Contains(t, p.RecommendedSources, "inventory")
}

func TestFallback_LongDescriptionTruncated(t *testing.T) {
	long := strings.Repeat("inventory software ", 30)
	p := Fallback(long)

	assert.LessOrEqual(t, len(p.ProductSummary), 203)
	assert.True(t, strings.HasSuffix(p.ProductSummary, "..."))
}

func TestFallback_TruncationKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("Lagerverwaltung für Einzelhändler ", 10)
	p := Fallback(long)

	assert.True(t, utf8.ValidString(p.ProductSummary))
	assert.True(t, strings.HasSuffix(p.ProductSummary, "..."))
	assert.Equal(t, 200, utf8.RuneCountInString(strings.TrimSuffix(p.ProductSummary, "...")))
}

func TestFallback_KeywordCap(t *testing.T) {
	words := make([]string, 0, 40)
	for _, w := range strings.Fields("alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima mike november oscar papa quebec romeo sierra tango") {
		words = append(words, w+"word")
	}
	p := Fallback(strings.Join(words, " "))

	assert.Len(t, p.Keywords, 15)
}

func TestTargetSources(t *testing.T) {
	p := &BusinessProfile{
		IndustryCategory:   "Technology/SaaS",
		RecommendedSources: []string{"shopify", "smallbusiness"},
	}

	sources := TargetSources(p, 8)
	require.NotEmpty(t, sources)
	assert.LessOrEqual(t, len(sources), 8)

	// Recommendations come first
	assert.Equal(t, "shopify", sources[0])
	assert.Equal(t, "smallbusiness", sources[1])
	// Industry pools fill the rest
	assert.Contains(t, sources, "technology")
}

func TestTargetSources_EmptyProfile(t *testing.T) {
	sources := TargetSources(&BusinessProfile{}, 8)

	require.Len(t, sources, 8)
	assert.Contains(t, sources, "entrepreneur")
	assert.Contains(t, sources, "askreddit")
}

func TestTargetSources_Deduplicates(t *testing.T) {
	p := &BusinessProfile{
		IndustryCategory:   "business",
		RecommendedSources: []string{"entrepreneur", "entrepreneur"},
	}

	sources := TargetSources(p, 20)
	seen := make(map[string]bool)
	for _, s := range sources {
		assert.False(t, seen[s], "duplicate source %q", s)
		seen[s] = true
	}
}

func TestTargetSources_Deterministic(t *testing.T) {
	p := &BusinessProfile{IndustryCategory: "Technology and business services"}

	first := TargetSources(p, 8)
	second := TargetSources(p, 8)
	assert.Equal(t, first, second)
}
