package scout

import (
	"fmt"
	"strings"
)

// Spam phrases that disqualify a post outright.
var spamIndicators = []string{
	"buy now", "click here", "limited time", "act fast", "guaranteed",
	"make money fast", "work from home", "get rich", "free money",
}

// A post must contain at least one of these to count as help-seeking.
var helpSeekingIndicators = []string{
	"?", "help", "advice", "recommend", "suggest", "looking for",
	"need", "how to", "best way", "what should", "any ideas",
}

// GateResult is the quality-gate decision for one post.
type GateResult struct {
	Pass   bool
	Reason string
}

// Gate is the admission filter applied to raw candidate posts before
// scoring. It is a pure predicate with no side effects.
type Gate struct {
	minUpvotes int
}

// NewGate creates a quality gate with the given minimum engagement count.
func NewGate(minUpvotes int) *Gate {
	return &Gate{minUpvotes: minUpvotes}
}

// Check decides whether a post is worth scoring. Rejections carry a reason
// for logging; the first failing check wins.
func (g *Gate) Check(post CandidatePost) GateResult {
	if post.Score < g.minUpvotes {
		return reject(fmt.Sprintf("score %d below minimum %d", post.Score, g.minUpvotes))
	}
	if !post.IsTextual {
		return reject("not a text post")
	}
	if post.Body == "" || post.Body == "[deleted]" || post.Body == "[removed]" {
		return reject("deleted or empty body")
	}
	if len(post.Body) < 20 {
		return reject("body too short")
	}
	if len(post.Body) > 2000 {
		return reject("body too long")
	}

	fullText := strings.ToLower(post.Title + " " + post.Body)
	for _, spam := range spamIndicators {
		if strings.Contains(fullText, spam) {
			return reject("spam indicator: " + spam)
		}
	}

	for _, indicator := range helpSeekingIndicators {
		if strings.Contains(fullText, indicator) {
			return GateResult{Pass: true}
		}
	}
	return reject("not seeking help or advice")
}

// Accept is the boolean form of Check.
func (g *Gate) Accept(post CandidatePost) bool {
	return g.Check(post).Pass
}

func reject(reason string) GateResult {
	return GateResult{Pass: false, Reason: reason}
}
