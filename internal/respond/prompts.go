package respond

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lcrown/threadscout/internal/profile"
	"github.com/lcrown/threadscout/internal/scout"
)

// styleTemplate shapes the voice of a generated reply.
type styleTemplate struct {
	tone        string
	approach    string
	personality string
}

var styleTemplates = map[string]styleTemplate{
	"Professional": {
		tone:        "knowledgeable but approachable",
		approach:    "quick helpful tip based on experience",
		personality: "someone experienced who wants to help out",
	},
	"Casual": {
		tone:        "super casual and relatable",
		approach:    "sharing what worked for you personally",
		personality: "friend who's been in the same situation",
	},
	"Expert": {
		tone:        "knowledgeable but not preachy",
		approach:    "quick expert insight without being overwhelming",
		personality: "someone who really knows their stuff but keeps it simple",
	},
	"Friendly": {
		tone:        "warm and genuinely caring",
		approach:    "encouraging support with a helpful suggestion",
		personality: "someone who really wants to see you succeed",
	},
	"Technical": {
		tone:        "straightforward and practical",
		approach:    "direct solution without unnecessary fluff",
		personality: "tech person who gets straight to the point",
	},
}

var casualStarters = []string{
	"Oh man, I've been there!",
	"Ugh, this is so frustrating when it happens.",
	"Been dealing with this exact thing lately.",
	"Honestly, I used to struggle with this too.",
	"Ngl, this used to drive me crazy.",
	"Tbh, I found something that actually works.",
	"Yeah, I've seen this happen a lot.",
	"Def know what you mean.",
	"Had the same issue last month.",
	"This is actually pretty common.",
}

var redditExpressions = []string{
	"tbh", "ngl", "def", "prob", "imo", "fwiw", "btw",
	"lol", "honestly", "legit", "basically", "literally",
}

var casualConnectors = []string{
	"I've found that", "What worked for me was", "In my experience",
	"I actually", "I ended up", "I usually", "I tend to",
	"My go-to is", "I swear by", "Can't recommend enough",
}

// fallbackStarters and fallbackAdvice combine into generic empathetic
// replies when generation fails, so the pipeline never halts on a single
// bad LLM call.
var fallbackStarters = []string{
	"Been there!", "Oh man, tough one.", "Yeah, this is tricky.",
	"Honestly, I've seen this before.", "Ugh, hate when this happens.",
}

var fallbackAdvice = []string{
	"Maybe try breaking it down into smaller steps?",
	"Have you looked into any tools for this?",
	"Sometimes the simple solutions work best.",
	"Might be worth asking in a more specific subreddit too.",
	"Feel free to DM if you want to chat about it more.",
}

func styleGuide(style string) string {
	info, ok := styleTemplates[style]
	if !ok {
		info = styleTemplates["Casual"]
	}
	return fmt.Sprintf("Write as %s using a %s tone. %s.", info.personality, info.tone, info.approach)
}

// selectMarketingAngle picks the angle that best matches the question's
// wording, falling back to a seeded random draw when nothing matches.
func selectMarketingAngle(post scout.CandidatePost, business *profile.BusinessProfile, rng *rand.Rand) string {
	angles := business.MarketingAngles
	if len(angles) == 0 {
		return "Position as a helpful solution to their specific problem"
	}

	questionText := strings.ToLower(post.Title + " " + post.Body)

	switch {
	case containsAny(questionText, "recommend", "suggestion", "tool", "software"):
		return angles[0]
	case containsAny(questionText, "problem", "issue", "help", "stuck"):
		if len(angles) > 1 {
			return angles[1]
		}
		return "Position as a solution to their problem"
	case containsAny(questionText, "cost", "expensive", "budget", "cheap"):
		if len(angles) > 2 {
			return angles[2]
		}
		return "Highlight cost-effectiveness"
	default:
		return angles[rng.Intn(len(angles))]
	}
}

// casualPatternHint builds the human-writing-pattern section of the prompt
// from seeded random draws.
func casualPatternHint(rng *rand.Rand) string {
	starter := casualStarters[rng.Intn(len(casualStarters))]
	connector := casualConnectors[rng.Intn(len(casualConnectors))]

	exprs := make([]string, 0, 3)
	for _, i := range rng.Perm(len(redditExpressions))[:3] {
		exprs = append(exprs, redditExpressions[i])
	}

	return fmt.Sprintf("Start with: '%s' Use expressions like: %s. Connect ideas with: '%s'.",
		starter, strings.Join(exprs, ", "), connector)
}

func businessContext(business *profile.BusinessProfile) string {
	mainBenefit := "helpful solution"
	if len(business.KeyBenefits) > 0 {
		mainBenefit = business.KeyBenefits[0]
	}
	summary := business.ProductSummary
	if summary == "" {
		summary = "a tool"
	}
	return fmt.Sprintf("You know about %s that %s. Only mention it if it genuinely helps their specific situation - don't be salesy.",
		summary, mainBenefit)
}

func buildPrompt(post scout.CandidatePost, business *profile.BusinessProfile, style, angle, patterns string) string {
	return fmt.Sprintf(`You're a real person on Reddit helping someone out. Write like you're casually chatting with a friend, not like an AI or corporate bot.

QUESTION:
r/%s: %s
%s

YOUR CONTEXT (only mention if genuinely helpful):
%s

STYLE: %s
APPROACH: %s

HUMAN WRITING PATTERNS TO USE:
%s

CRITICAL RULES:
- Write 1-3 short sentences max (like real Reddit comments)
- Use casual language, contractions (I've, don't, it's, etc.)
- Start with something relatable ("Oh man", "Been there", "Ugh yeah", "Honestly")
- Be helpful but don't sound like a salesperson or AI
- Only mention the product/tool if it REALLY fits naturally
- Use Reddit slang occasionally (tbh, ngl, def, prob, etc.)
- Sound like someone who genuinely cares, not robotic
- NO corporate speak, NO "I understand", NO overly structured advice
- Write like you're texting a friend who asked for help

Generate a short, genuine, human response:`,
		post.SourceID, post.Title, post.Body,
		businessContext(business), styleGuide(style), angle, patterns)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
