package profile

import (
	"regexp"
	"strings"
)

// Priority tiers for search terms. Lower is higher intent.
const (
	TierHighIntent  = 1 // direct tool/solution seeking
	TierKeyword     = 2 // business keywords and problem-seeking combos
	TierPainPoint   = 3 // pain points the product solves
	TierAlternative = 4 // alternative/replacement seeking
	TierQuestion    = 5 // generic question starters
)

// maxSearchTerms bounds downstream query cost per run.
const maxSearchTerms = 25

// SearchTerm is a single weighted query term.
type SearchTerm struct {
	Text string
	Tier int
}

// SearchProfile is the ordered, de-duplicated list of search terms built
// from a business profile. Higher-intent terms come first.
type SearchProfile struct {
	Terms []SearchTerm
}

// Texts returns just the term strings in order.
func (s SearchProfile) Texts() []string {
	out := make([]string, len(s.Terms))
	for i, t := range s.Terms {
		out[i] = t.Text
	}
	return out
}

// TopTexts returns up to n term strings in priority order.
func (s SearchProfile) TopTexts(n int) []string {
	texts := s.Texts()
	if len(texts) > n {
		texts = texts[:n]
	}
	return texts
}

// Fixed term pools. These are profile-independent, so even an empty
// business profile yields a usable search profile.
var (
	highIntentTerms = []string{
		"best tool for", "recommend tool", "looking for software", "need solution",
		"what tool should", "any good tools", "help me find", "suggestions for tools",
	}

	problemPrefixes = []string{
		"struggling with", "having trouble with", "need help with", "looking for help with",
	}

	alternativeTerms = []string{
		"alternative to", "better than", "replacement for", "similar to",
		"free alternative", "open source", "budget friendly",
	}

	questionTerms = []string{
		"how do i", "what is the best", "can anyone recommend",
		"does anyone know", "has anyone tried", "what do you use",
	}
)

var longWord = regexp.MustCompile(`\b\w{4,}\b`)

// BuildSearchProfile turns a business profile into an ordered, weighted
// search-term list. It never fails: empty profile fields simply contribute
// nothing, leaving the fixed term pools. Output is deterministic for a
// given profile.
func BuildSearchProfile(p *BusinessProfile) SearchProfile {
	var raw []SearchTerm

	add := func(tier int, terms ...string) {
		for _, t := range terms {
			raw = append(raw, SearchTerm{Text: t, Tier: tier})
		}
	}

	// Tier 1: high-intent purchase/recommendation phrases.
	add(TierHighIntent, highIntentTerms...)

	// Tier 2: top keywords, alone and combined with problem-seeking prefixes.
	keywords := p.Keywords
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	for _, kw := range keywords {
		add(TierKeyword, kw)
		for _, prefix := range problemPrefixes[:2] {
			add(TierKeyword, prefix+" "+kw)
		}
	}

	// Tier 3: pain points, verbatim when concise, key words otherwise.
	painPoints := p.PainPointsSolved
	if len(painPoints) > 3 {
		painPoints = painPoints[:3]
	}
	for _, pain := range painPoints {
		if len(strings.Fields(pain)) <= 4 {
			add(TierPainPoint, strings.ToLower(pain))
			continue
		}
		words := longWord.FindAllString(strings.ToLower(pain), -1)
		if len(words) > 3 {
			words = words[:3]
		}
		add(TierPainPoint, words...)
	}

	// Tier 4 and 5: alternative-seeking and generic question starters.
	add(TierAlternative, alternativeTerms...)
	add(TierQuestion, questionTerms...)

	// Clean, de-duplicate preserving first-seen order, truncate.
	seen := make(map[string]bool, len(raw))
	terms := make([]SearchTerm, 0, maxSearchTerms)
	for _, t := range raw {
		text := cleanTerm(t.Text)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		terms = append(terms, SearchTerm{Text: text, Tier: t.Tier})
		if len(terms) == maxSearchTerms {
			break
		}
	}

	return SearchProfile{Terms: terms}
}
