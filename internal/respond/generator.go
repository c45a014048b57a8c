package respond

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lcrown/threadscout/internal/profile"
	"github.com/lcrown/threadscout/internal/scout"
)

const defaultModel = "gemini-2.5-flash"

// TextGenerator produces reply text for a prompt. Implementations may fail;
// the Responder recovers with a fallback template.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements TextGenerator on the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// GeminiConfig holds configuration for the Gemini generator.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// NewGeminiGenerator creates a Gemini-backed text generator.
func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate runs one completion. Higher temperature keeps replies from
// sounding templated.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

// Close releases the underlying client.
func (g *GeminiGenerator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return out, nil
}

// GeneratedResponse is a draft reply after humanizing and quality scoring.
type GeneratedResponse struct {
	CandidateID    string         `json:"candidate_id"`
	RawText        string         `json:"raw_text"`
	HumanizedText  string         `json:"humanized_text"`
	Style          string         `json:"style"`
	MarketingAngle string         `json:"marketing_angle"`
	Fallback       bool           `json:"fallback"`
	Metrics        QualityMetrics `json:"quality_metrics"`
}

// Responder generates, humanizes and quality-scores replies. Template and
// angle draws come from an injectable seed so runs are reproducible in
// tests.
type Responder struct {
	generator TextGenerator
	rng       *rand.Rand
	style     string
}

// ResponderConfig holds responder configuration.
type ResponderConfig struct {
	Generator TextGenerator
	Style     string // default "Casual"
	Seed      int64  // 0 means an arbitrary seed
}

// NewResponder creates a responder.
func NewResponder(cfg ResponderConfig) *Responder {
	style := cfg.Style
	if style == "" {
		style = "Casual"
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Responder{
		generator: cfg.Generator,
		rng:       rand.New(rand.NewSource(seed)),
		style:     style,
	}
}

// Respond drafts a reply for one candidate post. Generation failures are
// recovered with a generic empathetic template; the result is always
// humanized and scored.
func (r *Responder) Respond(ctx context.Context, post scout.CandidatePost, business *profile.BusinessProfile) GeneratedResponse {
	angle := selectMarketingAngle(post, business, r.rng)
	patterns := casualPatternHint(r.rng)
	prompt := buildPrompt(post, business, r.style, angle, patterns)

	fallback := false
	var raw string
	var err error
	if r.generator == nil {
		err = errors.New("no text generator configured")
	} else {
		raw, err = r.generator.Generate(ctx, prompt)
	}
	if err != nil {
		slog.Warn("text generation failed, using fallback template",
			"candidate", post.ID,
			"error", err,
		)
		raw = r.fallbackReply()
		fallback = true
	}

	humanized := Humanize(raw)

	return GeneratedResponse{
		CandidateID:    post.ID,
		RawText:        raw,
		HumanizedText:  humanized,
		Style:          r.style,
		MarketingAngle: angle,
		Fallback:       fallback,
		Metrics:        AnalyzeQuality(humanized),
	}
}

func (r *Responder) fallbackReply() string {
	starter := fallbackStarters[r.rng.Intn(len(fallbackStarters))]
	advice := fallbackAdvice[r.rng.Intn(len(fallbackAdvice))]
	return starter + " " + advice
}
