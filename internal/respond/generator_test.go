package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcrown/threadscout/internal/profile"
	"github.com/lcrown/threadscout/internal/scout"
)

// mockGenerator is a mock implementation of TextGenerator for testing.
type mockGenerator struct {
	text    string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func respondPost() scout.CandidatePost {
	return scout.CandidatePost{
		ID:        "t3_abc",
		Title:     "Looking for inventory software recommendations",
		Body:      "I run a small retail shop and counting stock by hand is getting old. What should I use?",
		SourceID:  "smallbusiness",
		IsTextual: true,
	}
}

func respondBusiness() *profile.BusinessProfile {
	return &profile.BusinessProfile{
		ProductSummary:   "Inventory management software for small retail shops",
		Keywords:         []string{"inventory", "retail"},
		PainPointsSolved: []string{"manual stock tracking"},
		MarketingAngles:  []string{"Share as a helpful productivity tool"},
	}
}

func TestResponder_Respond(t *testing.T) {
	mock := &mockGenerator{
		text: "I would recommend a barcode scanner app. It is quick to set up and you do not have to retrain anyone on it.",
	}
	r := NewResponder(ResponderConfig{Generator: mock, Seed: 42})

	resp := r.Respond(context.Background(), respondPost(), respondBusiness())

	assert.Equal(t, "t3_abc", resp.CandidateID)
	assert.False(t, resp.Fallback)
	assert.Equal(t, mock.text, resp.RawText)
	// Humanization rewrites the formal phrasing
	assert.Contains(t, resp.HumanizedText, "I'd try")
	assert.Contains(t, resp.HumanizedText, "don't")
	assert.NotZero(t, resp.Metrics.Overall)
	require.Len(t, mock.prompts, 1)
	assert.Contains(t, mock.prompts[0], respondPost().Title)
}

func TestResponder_FallbackOnError(t *testing.T) {
	mock := &mockGenerator{err: errors.New("quota exceeded")}
	r := NewResponder(ResponderConfig{Generator: mock, Seed: 42})

	resp := r.Respond(context.Background(), respondPost(), respondBusiness())

	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.HumanizedText)
}

func TestResponder_NilGeneratorFallsBack(t *testing.T) {
	r := NewResponder(ResponderConfig{Seed: 42})

	resp := r.Respond(context.Background(), respondPost(), respondBusiness())

	assert.True(t, resp.Fallback)
	assert.NotEmpty(t, resp.HumanizedText)
}

func TestResponder_SeededDeterminism(t *testing.T) {
	first := NewResponder(ResponderConfig{Seed: 7}).
		Respond(context.Background(), respondPost(), respondBusiness())
	second := NewResponder(ResponderConfig{Seed: 7}).
		Respond(context.Background(), respondPost(), respondBusiness())

	assert.Equal(t, first, second)
}

func TestResponder_DefaultStyle(t *testing.T) {
	r := NewResponder(ResponderConfig{Generator: &mockGenerator{text: "ok"}, Seed: 1})

	resp := r.Respond(context.Background(), respondPost(), respondBusiness())
	assert.Equal(t, "Casual", resp.Style)
}

func TestResponder_AngleFromPostContent(t *testing.T) {
	post := respondPost()
	post.Title = "Is there a cheaper way to track stock?"
	post.Body = "My budget is tight and the expensive options are out of reach. Any affordable ideas out there?"

	business := respondBusiness()
	business.MarketingAngles = []string{
		"Position as a solution to common business problems",
		"Share as a helpful productivity tool",
		"Recommend based on cost-effectiveness",
	}

	r := NewResponder(ResponderConfig{Generator: &mockGenerator{text: "ok"}, Seed: 3})
	resp := r.Respond(context.Background(), post, business)

	assert.Equal(t, "Recommend based on cost-effectiveness", resp.MarketingAngle)
}
