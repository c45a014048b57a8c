// Package profile defines the business profile record derived from a
// free-text business description and the weighted search terms built from it.
package profile

import (
	"regexp"
	"strings"
)

// BusinessProfile holds the structured analysis of a business description.
// Every field has a usable zero value so downstream scoring never has to
// distinguish missing from empty.
type BusinessProfile struct {
	ProductSummary     string   `json:"product_summary"`
	TargetAudience     string   `json:"target_audience"`
	IndustryCategory   string   `json:"industry_category"`
	BusinessModel      string   `json:"business_model"`
	KeyBenefits        []string `json:"key_benefits"`
	PainPointsSolved   []string `json:"pain_points_solved"`
	CompetitiveEdges   []string `json:"competitive_advantages"`
	UseCases           []string `json:"use_cases"`
	Keywords           []string `json:"keywords"`
	RecommendedSources []string `json:"recommended_sources"`
	MarketingAngles    []string `json:"marketing_angles"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Normalize lowercases and de-duplicates keywords and pain points in place,
// preserving first-seen order. Safe on a zero-value profile.
func (p *BusinessProfile) Normalize() {
	p.Keywords = normalizeList(p.Keywords)
	p.PainPointsSolved = normalizeList(p.PainPointsSolved)
	p.RecommendedSources = dedupe(p.RecommendedSources)
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.ToLower(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// cleanTerm strips non-alphanumeric characters (keeping spaces), lowercases
// and trims. Returns "" for terms too short to be useful as queries.
func cleanTerm(term string) string {
	term = strings.ToLower(term)
	term = nonAlnum.ReplaceAllString(term, "")
	term = strings.Join(strings.Fields(term), " ")
	if len(term) <= 2 {
		return ""
	}
	return term
}
