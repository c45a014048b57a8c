package profile

import (
	"strings"
)

// Fixed iteration order for the category pools below, so source selection
// is deterministic for a given profile.
var sourceCategories = []string{"business", "technology", "productivity", "finance", "ecommerce", "general"}

// Community pools by business category, used when the analyzer can't
// produce its own recommendations.
var defaultSources = map[string][]string{
	"business":     {"entrepreneur", "smallbusiness", "business", "startups", "marketing"},
	"technology":   {"technology", "software", "programming", "webdev", "saas"},
	"productivity": {"productivity", "getmotivated", "lifehacks", "organization"},
	"finance":      {"personalfinance", "investing", "financialplanning", "money"},
	"ecommerce":    {"ecommerce", "shopify", "amazon", "dropshipping", "onlinebusiness"},
	"general":      {"askreddit", "nostupidquestions", "advice", "lifeprotips"},
}

var stopWords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "they": true, "have": true,
	"will": true, "your": true, "their": true, "which": true, "while": true, "about": true,
}

// contentSourceHints maps description vocabulary to extra community pools.
var contentSourceHints = []struct {
	words   []string
	sources []string
}{
	{[]string{"inventory", "retail", "stock", "warehouse"}, []string{"ecommerce", "retailmanagement", "inventory", "shopify"}},
	{[]string{"software", "saas", "platform", "app"}, []string{"software", "saas", "technology", "webdev"}},
	{[]string{"productivity", "efficient", "management", "organize"}, []string{"productivity", "getmotivated", "organization", "lifehacks"}},
	{[]string{"finance", "financial", "money", "cost"}, []string{"personalfinance", "financialplanning", "money"}},
	{[]string{"marketing", "sales", "customer"}, []string{"marketing", "sales", "customerservice"}},
}

// Fallback builds a rough business profile straight from the description
// text, for when the LLM analyzer is unavailable or fails. It always
// returns a usable profile.
func Fallback(description string) *BusinessProfile {
	lower := strings.ToLower(description)

	// Harvest keywords: anything reasonably long that isn't a stop word.
	var keywords []string
	for _, word := range strings.Fields(lower) {
		word = cleanTerm(word)
		if word == "" || len(word) <= 3 || stopWords[word] {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == 15 {
			break
		}
	}

	sources := []string{"entrepreneur", "smallbusiness", "startups", "business"}
	for _, hint := range contentSourceHints {
		for _, w := range hint.words {
			if strings.Contains(lower, w) {
				sources = append(sources, hint.sources...)
				break
			}
		}
	}

	summary := description
	if runes := []rune(summary); len(runes) > 200 {
		summary = string(runes[:200]) + "..."
	}

	p := &BusinessProfile{
		ProductSummary:     summary,
		TargetAudience:     "Business owners and professionals",
		IndustryCategory:   "Technology/SaaS",
		BusinessModel:      "Subscription-based service",
		KeyBenefits:        []string{"Efficiency improvement", "Cost savings", "Time savings"},
		PainPointsSolved:   []string{"Manual processes", "Inefficient workflows", "Data management issues"},
		CompetitiveEdges:   []string{"User-friendly interface", "Competitive pricing"},
		UseCases:           []string{"Daily operations", "Project management", "Data analysis"},
		Keywords:           keywords,
		RecommendedSources: sources,
		MarketingAngles: []string{
			"Position as a solution to common business problems",
			"Share as a helpful productivity tool",
			"Recommend based on cost-effectiveness",
		},
	}
	p.Normalize()
	return p
}

// TargetSources picks the communities to search for a profile, merging the
// analyzer's recommendations with category pools keyed off the industry,
// de-duplicated in order and capped at limit.
func TargetSources(p *BusinessProfile, limit int) []string {
	targets := append([]string{}, p.RecommendedSources...)

	industry := strings.ToLower(p.IndustryCategory)
	for _, category := range sourceCategories {
		if strings.Contains(industry, category) {
			targets = append(targets, defaultSources[category]...)
		}
	}
	if containsAny(industry, "tech", "software", "saas", "platform", "app") {
		targets = append(targets, defaultSources["technology"]...)
	}
	if containsAny(industry, "business", "startup", "company", "service") {
		targets = append(targets, defaultSources["business"]...)
	}
	if containsAny(industry, "retail", "inventory", "sales", "commerce") {
		targets = append(targets, defaultSources["ecommerce"]...)
	}

	if len(targets) == 0 {
		targets = append(targets, defaultSources["business"]...)
		targets = append(targets, defaultSources["general"]...)
	}

	targets = dedupe(targets)
	if len(targets) > limit {
		targets = targets[:limit]
	}
	return targets
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
