package scout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lcrown/threadscout/internal/profile"
)

var scorerNow = time.Unix(1700000000, 0)

// neutralPost has no pattern matches: only the body-length bonus applies.
func neutralPost() CandidatePost {
	return CandidatePost{
		ID:        "p1",
		Title:     "thread one",
		Body:      strings.Repeat("alpha beta ", 10),
		Score:     0,
		CreatedAt: scorerNow.Add(-100 * time.Hour).Unix(),
		IsTextual: true,
	}
}

func TestScore_NeutralBaseline(t *testing.T) {
	score := Score(neutralPost(), &profile.BusinessProfile{}, scorerNow)
	assert.InDelta(t, 0.2, score, 0.001)
}

func TestScore_HighValuePattern(t *testing.T) {
	post := neutralPost()
	post.Title = "looking for a stock counter"

	// 0.8 for the phrase, 0.4 extra for appearing in the title
	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.InDelta(t, 1.4, score, 0.001)
}

func TestScore_ProblemPattern(t *testing.T) {
	post := neutralPost()
	post.Body = "I keep struggling with my stock counts and it never balances at month end, always off somehow."

	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.InDelta(t, 0.8, score, 0.001)
}

func TestScore_EngagementCapped(t *testing.T) {
	post := neutralPost()
	post.Score = 1000
	post.NumReplies = 100

	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.InDelta(t, 0.7, score, 0.001, "engagement bonus must cap at 0.5")
}

func TestScore_RecencyBonus(t *testing.T) {
	business := &profile.BusinessProfile{}

	fresh := neutralPost()
	fresh.CreatedAt = scorerNow.Add(-12 * time.Hour).Unix()
	assert.InDelta(t, 0.5, Score(fresh, business, scorerNow), 0.001)

	recent := neutralPost()
	recent.CreatedAt = scorerNow.Add(-48 * time.Hour).Unix()
	assert.InDelta(t, 0.3, Score(recent, business, scorerNow), 0.001)

	old := neutralPost()
	old.CreatedAt = scorerNow.Add(-200 * time.Hour).Unix()
	assert.InDelta(t, 0.2, Score(old, business, scorerNow), 0.001)
}

func TestScore_QuestionTitleBonus(t *testing.T) {
	post := neutralPost()
	post.Title = "thread one?"

	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.InDelta(t, 0.4, score, 0.001)
}

func TestScore_NegativeTermsReduce(t *testing.T) {
	post := neutralPost()
	withoutJoke := Score(post, &profile.BusinessProfile{}, scorerNow)

	post.Body += " just a meme really"
	withJoke := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.Less(t, withJoke, withoutJoke)
}

func TestScore_PromotionalReduce(t *testing.T) {
	post := neutralPost()
	post.Body = "Hey all, check out my product, we built a discount code system you will love, honestly great stuff."

	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.Equal(t, 0.0, score, "promotional posts should floor at zero")
}

func TestScore_NeverNegative(t *testing.T) {
	post := neutralPost()
	post.Body = "joke meme funny lol troll shitpost rant venting, plus check out my product with a discount code."

	score := Score(post, &profile.BusinessProfile{}, scorerNow)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestScore_CapsAtMaximum(t *testing.T) {
	business := &profile.BusinessProfile{
		Keywords:         []string{"inventory", "retail"},
		PainPointsSolved: []string{"manual stock tracking"},
	}
	post := CandidatePost{
		ID:         "p2",
		Title:      "Looking for inventory software recommendations",
		Body:       "I run a small retail shop and manual stock tracking is killing me. What should I use for inventory?",
		Score:      15,
		NumReplies: 8,
		CreatedAt:  scorerNow.Add(-12 * time.Hour).Unix(),
		IsTextual:  true,
	}

	score := Score(post, business, scorerNow)
	assert.Equal(t, ScoreCap, score)
}

func TestScore_KeywordContextBonus(t *testing.T) {
	business := &profile.BusinessProfile{Keywords: []string{"inventory"}}

	plain := neutralPost()
	plain.Body = "My inventory " + strings.Repeat("alpha beta ", 9)
	plainScore := Score(plain, business, scorerNow)

	ctx := neutralPost()
	ctx.Body = "Best inventory " + strings.Repeat("alpha beta ", 9)
	ctxScore := Score(ctx, business, scorerNow)

	assert.InDelta(t, 0.3, ctxScore-plainScore, 0.001)
}

func TestScore_StackedSignals(t *testing.T) {
	business := &profile.BusinessProfile{
		Keywords:         []string{"inventory", "retail"},
		PainPointsSolved: []string{"manual stock tracking"},
	}
	post := CandidatePost{
		ID:         "p9",
		Title:      "Looking for inventory software recommendations",
		Body:       "Our manual stock tracking eats hours every week and I want something better suited for a small retail shop.",
		Score:      15,
		NumReplies: 8,
		CreatedAt:  scorerNow.Add(-6 * time.Hour).Unix(),
		IsTextual:  true,
	}

	score := Score(post, business, scorerNow)
	assert.Greater(t, score, 1.5)
	assert.LessOrEqual(t, score, ScoreCap)
}

func TestScore_Deterministic(t *testing.T) {
	business := &profile.BusinessProfile{
		Keywords:         []string{"inventory"},
		PainPointsSolved: []string{"manual stock tracking"},
	}
	post := neutralPost()
	post.Body = "Need a hand with inventory, manual tracking is slow. Any suggestions for tools that work well here?"

	first := Score(post, business, scorerNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(post, business, scorerNow))
	}
}
