package scout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func helpPost() CandidatePost {
	return CandidatePost{
		ID:        "abc123",
		Title:     "Need advice on tracking inventory",
		Body:      "I run a small shop and I'm looking for a better way to track stock. Any recommendations?",
		Score:     10,
		IsTextual: true,
	}
}

func TestGate_AcceptsHelpSeekingPost(t *testing.T) {
	g := NewGate(5)

	result := g.Check(helpPost())
	assert.True(t, result.Pass)
	assert.Empty(t, result.Reason)
}

func TestGate_RejectsLowScore(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Score = 4
	result := g.Check(post)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Reason, "below minimum")
}

func TestGate_RejectsNonTextPost(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.IsTextual = false
	assert.False(t, g.Accept(post))
}

func TestGate_RejectsDeletedBody(t *testing.T) {
	g := NewGate(5)

	for _, body := range []string{"", "[deleted]", "[removed]"} {
		post := helpPost()
		post.Body = body
		result := g.Check(post)
		assert.False(t, result.Pass, "body %q should be rejected", body)
		assert.Equal(t, "deleted or empty body", result.Reason)
	}
}

func TestGate_RejectsBodyLength(t *testing.T) {
	g := NewGate(5)

	short := helpPost()
	short.Body = "help me please?"
	assert.False(t, g.Accept(short))

	long := helpPost()
	long.Body = strings.Repeat("a very long story about my shop ", 100)
	assert.False(t, g.Accept(long))
}

func TestGate_RejectsSpam(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Body = "Click here to get rich with my amazing system, guaranteed results for anyone who needs help!"
	result := g.Check(post)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Reason, "spam indicator")
}

func TestGate_SpamMatchesTitleToo(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Title = "Limited time opportunity, need advice"
	result := g.Check(post)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Reason, "limited time")
}

func TestGate_RejectsNonHelpSeeking(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Title = "My thoughts on the retail industry"
	post.Body = "Just sharing some observations about retail trends I noticed this quarter in my area."
	result := g.Check(post)
	assert.False(t, result.Pass)
	assert.Equal(t, "not seeking help or advice", result.Reason)
}

func TestGate_QuestionMarkCountsAsHelpSeeking(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Title = "Is there a better way to do this?"
	post.Body = "I spend hours every week counting stock by hand and it feels like a waste of time."
	assert.True(t, g.Accept(post))
}

func TestGate_FirstFailingCheckWins(t *testing.T) {
	g := NewGate(5)

	post := helpPost()
	post.Score = 0
	post.IsTextual = false
	result := g.Check(post)
	assert.Contains(t, result.Reason, "below minimum")
}
