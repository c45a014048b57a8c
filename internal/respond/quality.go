package respond

import (
	"strings"
)

// QualityMetrics scores a finished reply along four axes, each in [0, 1].
type QualityMetrics struct {
	Helpfulness       float64 `json:"helpfulness"`
	Naturalness       float64 `json:"naturalness"`
	MarketingSubtlety float64 `json:"marketing_subtlety"`
	Readability       float64 `json:"readability"`
	Overall           float64 `json:"overall"`
}

var (
	actionWords   = []string{"try", "use", "implement", "consider", "start", "step", "process"}
	solutionWords = []string{"solution", "fix", "resolve", "solve", "address", "handle"}

	conversationalMarkers = []string{
		"i", "you", "we", "my", "your", "our",
		"personally", "experience", "found", "think",
		"hope", "good luck", "feel free",
	}
	formalPenalties = []string{"furthermore", "moreover", "in conclusion", "therefore"}

	naturalMentions  = []string{"i use", "i found", "worked for me", "might help", "worth checking"}
	promotionalWords = []string{"buy", "purchase", "sale", "discount", "offer", "deal"}
)

// AnalyzeQuality scores a reply on helpfulness, naturalness, marketing
// subtlety and readability, and averages them into an overall score.
// Pure function of the text; deterministic.
func AnalyzeQuality(response string) QualityMetrics {
	m := QualityMetrics{
		Helpfulness:       helpfulness(response),
		Naturalness:       naturalness(response),
		MarketingSubtlety: marketingSubtlety(response),
		Readability:       readability(response),
	}
	m.Overall = (m.Helpfulness + m.Naturalness + m.MarketingSubtlety + m.Readability) / 4
	return m
}

// readability rewards ~17.5 words per sentence and ~5 characters per word.
func readability(text string) float64 {
	sentences := strings.Split(text, ".")
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return 0.0
	}

	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	totalChars := 0
	for _, w := range words {
		totalChars += len(w)
	}
	avgWordLen := float64(totalChars) / float64(len(words))

	sentenceScore := max(0, 1-abs(avgSentenceLen-17.5)/17.5)
	wordScore := max(0, 1-abs(avgWordLen-5)/5)

	return (sentenceScore + wordScore) / 2
}

// helpfulness measures how much of the actionable and solution vocabulary
// the reply touches.
func helpfulness(response string) float64 {
	lower := strings.ToLower(response)

	actionScore := float64(countPresent(lower, actionWords)) / float64(len(actionWords))
	solutionScore := float64(countPresent(lower, solutionWords)) / float64(len(solutionWords))

	return min(1.0, (actionScore+solutionScore)/2)
}

// naturalness rewards conversational markers and penalizes formal
// connectives.
func naturalness(response string) float64 {
	lower := strings.ToLower(response)

	conversational := countPresent(lower, conversationalMarkers)
	penalty := countPresent(lower, formalPenalties)

	return clamp01(float64(conversational)/10 - float64(penalty)*0.2)
}

// marketingSubtlety rewards experience-framed mentions over sales language.
func marketingSubtlety(response string) float64 {
	lower := strings.ToLower(response)

	natural := countPresent(lower, naturalMentions)
	promotional := countPresent(lower, promotionalWords)

	return clamp01(float64(natural)/3 - float64(promotional)*0.3)
}

func countPresent(text string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			count++
		}
	}
	return count
}

func clamp01(v float64) float64 {
	return max(0, min(1.0, v))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
