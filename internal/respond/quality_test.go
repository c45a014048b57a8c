package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMetricsInRange(t *testing.T, m QualityMetrics) {
	t.Helper()
	for name, v := range map[string]float64{
		"helpfulness":        m.Helpfulness,
		"naturalness":        m.Naturalness,
		"marketing_subtlety": m.MarketingSubtlety,
		"readability":        m.Readability,
		"overall":            m.Overall,
	} {
		assert.GreaterOrEqual(t, v, 0.0, name)
		assert.LessOrEqual(t, v, 1.0, name)
	}
}

func TestAnalyzeQuality_AllMetricsInRange(t *testing.T) {
	samples := []string{
		"",
		"ok",
		"I'd try a barcode scanner first. It worked for me and the whole process took a weekend to set up. Hope this helps!",
		"Furthermore, in conclusion, therefore, moreover: buy buy buy.",
	}
	for _, s := range samples {
		assertMetricsInRange(t, AnalyzeQuality(s))
	}
}

func TestAnalyzeQuality_HelpfulTextScoresHigher(t *testing.T) {
	helpful := "You could try to implement a simple process: start with one shelf, use a scanner, and consider a weekly count. That should solve the problem and fix the gaps."
	vague := "Yeah that sounds rough, shops are like that sometimes I guess."

	h := AnalyzeQuality(helpful)
	v := AnalyzeQuality(vague)
	assert.Greater(t, h.Helpfulness, v.Helpfulness)
}

func TestAnalyzeQuality_FormalLanguagePenalized(t *testing.T) {
	casual := "I think you could sort this out pretty easily, personally I found a scanner app did the trick for my shop."
	formal := "Furthermore, one must consider the ramifications. Moreover, in conclusion, therefore, the optimal path remains unclear."

	c := AnalyzeQuality(casual)
	f := AnalyzeQuality(formal)
	assert.Greater(t, c.Naturalness, f.Naturalness)
}

func TestAnalyzeQuality_SalesLanguagePenalized(t *testing.T) {
	subtle := "I use a small scanner app myself, worked for me and might help in your case too, worth checking at least."
	salesy := "Buy it today! Huge discount, special offer, best deal of the year, purchase now before the sale ends."

	s := AnalyzeQuality(subtle)
	p := AnalyzeQuality(salesy)
	assert.Greater(t, s.MarketingSubtlety, p.MarketingSubtlety)
	assert.Equal(t, 0.0, p.MarketingSubtlety)
}

func TestAnalyzeQuality_EmptyText(t *testing.T) {
	m := AnalyzeQuality("")
	assert.Equal(t, 0.0, m.Readability)
	assert.Equal(t, 0.0, m.Helpfulness)
}

func TestAnalyzeQuality_OverallIsAverage(t *testing.T) {
	m := AnalyzeQuality("I use a scanner, you could try the same process, worked for me and might help. Feel free to ask more.")
	expected := (m.Helpfulness + m.Naturalness + m.MarketingSubtlety + m.Readability) / 4
	assert.InDelta(t, expected, m.Overall, 1e-9)
}

func TestAnalyzeQuality_Deterministic(t *testing.T) {
	text := "Personally I found a weekly count works, you could start there and consider a scanner later if it helps."
	first := AnalyzeQuality(text)
	assert.Equal(t, first, AnalyzeQuality(text))
}
