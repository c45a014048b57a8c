package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FallbackWithoutAPIKey(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, Config{})
	require.NoError(t, err)
	defer a.Close()

	p := a.Analyze(ctx, "We sell inventory management software for small retail shops")
	require.NotNil(t, p)
	assert.Contains(t, p.Keywords, "inventory")
	assert.NotEmpty(t, p.RecommendedSources)
	assert.NotEmpty(t, p.MarketingAngles)
	assert.NotEmpty(t, p.PainPointsSolved)
}

func TestAnalyze_NeverNil(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, Config{})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Analyze(ctx, ""))
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSONBlock(tt.in))
		})
	}
}

func TestAnalysisPrompt_ContainsDescription(t *testing.T) {
	prompt := analysisPrompt("custom widget business")
	assert.Contains(t, prompt, "custom widget business")
	assert.Contains(t, prompt, "recommended_sources")
	assert.Contains(t, prompt, "marketing_angles")
}
