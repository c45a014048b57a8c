// Package analyzer turns a free-text business description into a
// structured business profile using a hosted LLM, with a heuristic
// fallback when the model is unavailable.
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/lcrown/threadscout/internal/profile"
)

const defaultModel = "gemini-2.5-flash"

// Analyzer extracts business insight from a description.
type Analyzer struct {
	client *genai.Client
	model  string
}

// Config holds analyzer configuration.
type Config struct {
	APIKey string
	Model  string
}

// New creates an analyzer. An empty API key is allowed; Analyze then
// always uses the heuristic fallback.
func New(ctx context.Context, cfg Config) (*Analyzer, error) {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	if cfg.APIKey == "" {
		return &Analyzer{model: model}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Analyzer{client: client, model: model}, nil
}

// Close releases the underlying client.
func (a *Analyzer) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

// Analyze builds a business profile from a description. Model failures
// degrade to the heuristic fallback; this method never returns a nil
// profile.
func (a *Analyzer) Analyze(ctx context.Context, description string) *profile.BusinessProfile {
	if a.client == nil {
		slog.Debug("no LLM configured, using fallback business analysis")
		return profile.Fallback(description)
	}

	p, err := a.analyzeLLM(ctx, description)
	if err != nil {
		slog.Warn("business analysis failed, using fallback", "error", err)
		return profile.Fallback(description)
	}

	// Fill gaps the model left so downstream scoring has something to
	// work with.
	if len(p.RecommendedSources) == 0 {
		p.RecommendedSources = []string{
			"entrepreneur", "smallbusiness", "startups", "business",
			"productivity", "software", "saas", "technology",
		}
	}
	if len(p.MarketingAngles) == 0 {
		p.MarketingAngles = profile.Fallback(description).MarketingAngles
	}

	p.Normalize()
	return p
}

func (a *Analyzer) analyzeLLM(ctx context.Context, description string) (*profile.BusinessProfile, error) {
	model := a.client.GenerativeModel(a.model)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(analysisPrompt(description)))
	if err != nil {
		return nil, fmt.Errorf("generate analysis: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, err
	}
	text = cleanJSONBlock(text)

	var p profile.BusinessProfile
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("parse analysis JSON: %w", err)
	}
	return &p, nil
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

// cleanJSONBlock strips a markdown code fence if the model wrapped its
// JSON in one.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
