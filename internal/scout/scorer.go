package scout

import (
	"regexp"
	"strings"
	"time"

	"github.com/lcrown/threadscout/internal/profile"
)

// ScoreCap bounds the accumulated relevance score.
const ScoreCap = 3.0

// DefaultRelevanceThreshold is the admission threshold applied by callers:
// posts scoring at or below it are not kept as candidates. A tuning
// parameter, not a structural invariant.
const DefaultRelevanceThreshold = 0.5

// Direct problem/solution-seeking phrases, the strongest opportunity signal.
var highValuePatterns = []string{
	"looking for", "need help with", "best tool for", "recommend", "suggestions for",
	"what should i use", "any good", "help me find", "trying to find",
	"does anyone know", "what do you use for", "best way to",
}

// Problem-description phrases, a weaker but still positive signal.
var problemPatterns = []string{
	"struggling with", "having trouble", "can't figure out", "frustrated with",
	"stuck on", "difficult to", "challenge with", "issue with", "problem with",
}

// Signals of joke/low-effort posts.
var negativeTerms = []string{
	"joke", "meme", "funny", "lol", "troll", "shitpost", "circlejerk",
	"rant", "venting", "unpopular opinion", "change my mind", "roast me",
}

// Signals the poster is promoting something themselves.
var promoIndicators = []string{
	"my product", "our solution", "check out", "affiliate", "discount code",
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Score estimates the marketing opportunity of one candidate post against
// a business profile, bounded to [0, ScoreCap]. Pure function: identical
// inputs always yield identical output. The clock is passed in so recency
// bonuses are testable.
func Score(post CandidatePost, business *profile.BusinessProfile, now time.Time) float64 {
	score := 0.0

	fullText := strings.ToLower(post.Title + " " + post.Body)
	titleText := strings.ToLower(post.Title)

	for _, pattern := range highValuePatterns {
		if strings.Contains(fullText, pattern) {
			score += 0.8
			if strings.Contains(titleText, pattern) {
				score += 0.4
			}
		}
	}

	for _, pattern := range problemPatterns {
		if strings.Contains(fullText, pattern) {
			score += 0.6
		}
	}

	// Pain-point word matches carry high weight; title hits get a bonus.
	for _, painPoint := range business.PainPointsSolved {
		for _, word := range wordPattern.FindAllString(strings.ToLower(painPoint), -1) {
			if len(word) > 3 && strings.Contains(fullText, word) {
				score += 0.5
				if strings.Contains(titleText, word) {
					score += 0.3
				}
			}
		}
	}

	// Keyword matches, with a bonus when the keyword appears in a
	// solution-seeking construction.
	for _, keyword := range business.Keywords {
		keyword = strings.ToLower(keyword)
		if !strings.Contains(fullText, keyword) {
			continue
		}
		score += 0.4
		contexts := []string{
			"for " + keyword, keyword + " tool", keyword + " solution",
			"good " + keyword, "best " + keyword,
		}
		for _, ctx := range contexts {
			if strings.Contains(fullText, ctx) {
				score += 0.3
			}
		}
	}

	// Engagement bonus, capped so a viral post can't dominate.
	engagement := float64(post.Score)*0.01 + float64(post.NumReplies)*0.02
	score += min(engagement, 0.5)

	// Body length sweet spot: detailed but not overwhelming.
	switch bodyLen := len(post.Body); {
	case bodyLen >= 50 && bodyLen <= 500:
		score += 0.2
	case bodyLen > 500:
		score += 0.1
	}

	ageHours := now.Sub(post.CreatedTime()).Hours()
	switch {
	case ageHours < 24:
		score += 0.3
	case ageHours < 72:
		score += 0.1
	}

	for _, term := range negativeTerms {
		if strings.Contains(fullText, term) {
			score -= 0.5
		}
	}

	for _, indicator := range promoIndicators {
		if strings.Contains(fullText, indicator) {
			score -= 0.8
		}
	}

	if strings.Contains(post.Title, "?") {
		score += 0.2
	}

	return max(0.0, min(score, ScoreCap))
}
