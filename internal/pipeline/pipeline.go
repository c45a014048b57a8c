// Package pipeline runs one full discovery-to-publish cycle for a
// business description.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lcrown/threadscout/internal/db"
	"github.com/lcrown/threadscout/internal/guard"
	"github.com/lcrown/threadscout/internal/poster"
	"github.com/lcrown/threadscout/internal/profile"
	"github.com/lcrown/threadscout/internal/respond"
	"github.com/lcrown/threadscout/internal/scout"
)

// BusinessAnalyzer turns a description into a business profile.
type BusinessAnalyzer interface {
	Analyze(ctx context.Context, description string) *profile.BusinessProfile
}

// Pipeline wires the stages together. Stages run sequentially; external
// calls are paced to respect rate limits.
type Pipeline struct {
	analyzer      BusinessAnalyzer
	aggregator    *scout.Aggregator
	responder     *respond.Responder
	guard         *guard.Guard
	poster        poster.Poster
	store         *db.Store
	sourceLimit   int
	generatePause time.Duration
}

// Config holds pipeline configuration.
type Config struct {
	Analyzer      BusinessAnalyzer
	Aggregator    *scout.Aggregator
	Responder     *respond.Responder
	Guard         *guard.Guard
	Poster        poster.Poster // nil disables publishing
	Store         *db.Store     // nil disables candidate persistence
	SourceLimit   int           // communities searched per run (default 8)
	GeneratePause time.Duration // pause between generation calls
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	sourceLimit := cfg.SourceLimit
	if sourceLimit <= 0 {
		sourceLimit = 8
	}
	return &Pipeline{
		analyzer:      cfg.Analyzer,
		aggregator:    cfg.Aggregator,
		responder:     cfg.Responder,
		guard:         cfg.Guard,
		poster:        cfg.Poster,
		store:         cfg.Store,
		sourceLimit:   sourceLimit,
		generatePause: cfg.GeneratePause,
	}
}

// PublishOutcome is the structured result of one publish attempt. Guard
// rejections land here with their reason; nothing is dropped silently.
type PublishOutcome struct {
	CandidateID string `json:"candidate_id"`
	Allowed     bool   `json:"allowed"`
	Reason      string `json:"reason"`
	Detail      string `json:"detail,omitempty"`
	CommentURL  string `json:"comment_url,omitempty"`
	Error       string `json:"error,omitempty"`
	DryRun      bool   `json:"dry_run"`
}

// RunResult collects everything one run produced.
type RunResult struct {
	RunID      string                      `json:"run_id"`
	Profile    *profile.BusinessProfile    `json:"profile"`
	Search     profile.SearchProfile       `json:"-"`
	Candidates []scout.ScoredCandidate     `json:"candidates"`
	Responses  []respond.GeneratedResponse `json:"responses"`
	Publishes  []PublishOutcome            `json:"publishes,omitempty"`
}

// Options control which stages a run executes.
type Options struct {
	Respond bool // generate replies for discovered candidates
	Publish bool // attempt publishing through the guard
	DryRun  bool // check guard admission but never post or mutate state
}

// Run executes one cycle: analyze, discover, optionally respond and
// publish. Partial external failures degrade to partial results.
func (p *Pipeline) Run(ctx context.Context, description string, opts Options) (*RunResult, error) {
	runID := uuid.NewString()

	business := p.analyzer.Analyze(ctx, description)
	search := profile.BuildSearchProfile(business)
	sources := profile.TargetSources(business, p.sourceLimit)

	slog.Info("starting discovery run",
		"run_id", runID,
		"search_terms", len(search.Terms),
		"communities", len(sources),
	)

	candidates, err := p.aggregator.Discover(ctx, business, search, sources)
	if err != nil {
		return &RunResult{RunID: runID, Profile: business, Search: search}, err
	}

	result := &RunResult{
		RunID:      runID,
		Profile:    business,
		Search:     search,
		Candidates: candidates,
	}

	p.persistCandidates(ctx, runID, candidates)

	if !opts.Respond && !opts.Publish {
		return result, nil
	}

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		resp := p.responder.Respond(ctx, candidate.CandidatePost, business)
		result.Responses = append(result.Responses, resp)

		if i < len(candidates)-1 {
			p.pause(ctx)
		}
	}

	if opts.Publish {
		result.Publishes = p.publishAll(ctx, result, opts.DryRun)
	}

	return result, nil
}

// publishAll pushes each response through the guard in rank order. After
// the first live publish the guard's delay window rejects the rest; those
// rejections are reported, not retried.
func (p *Pipeline) publishAll(ctx context.Context, result *RunResult, dryRun bool) []PublishOutcome {
	byID := make(map[string]scout.ScoredCandidate, len(result.Candidates))
	for _, c := range result.Candidates {
		byID[c.ID] = c
	}

	outcomes := make([]PublishOutcome, 0, len(result.Responses))
	for _, resp := range result.Responses {
		outcome := PublishOutcome{
			CandidateID: resp.CandidateID,
			DryRun:      dryRun,
		}

		decision := p.guard.Accept(guard.Request{
			CandidateID:  resp.CandidateID,
			ResponseText: resp.HumanizedText,
			QualityScore: resp.Metrics.Overall,
		})
		outcome.Allowed = decision.Allowed
		outcome.Reason = decision.Reason
		outcome.Detail = decision.Detail

		if !decision.Allowed {
			slog.Info("publish rejected",
				"candidate", resp.CandidateID,
				"reason", decision.Reason,
			)
			outcomes = append(outcomes, outcome)
			continue
		}

		if dryRun {
			slog.Info("dry run: would publish", "candidate", resp.CandidateID)
			outcomes = append(outcomes, outcome)
			continue
		}

		posted, err := p.poster.Publish(ctx, poster.Reply{
			CandidateID: resp.CandidateID,
			Text:        resp.HumanizedText,
		})
		if err != nil {
			outcome.Allowed = false
			outcome.Error = err.Error()
			slog.Error("publish failed", "candidate", resp.CandidateID, "error", err)
			outcomes = append(outcomes, outcome)
			continue
		}

		candidate := byID[resp.CandidateID]
		p.guard.Record(ctx, db.PostedReply{
			CandidateID:  resp.CandidateID,
			Community:    candidate.SourceID,
			Title:        candidate.Title,
			Response:     resp.HumanizedText,
			CommentID:    posted.CommentID,
			CommentURL:   posted.CommentURL,
			QualityScore: resp.Metrics.Overall,
		})
		outcome.CommentURL = posted.CommentURL
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (p *Pipeline) persistCandidates(ctx context.Context, runID string, candidates []scout.ScoredCandidate) {
	if p.store == nil {
		return
	}
	for _, c := range candidates {
		err := p.store.SaveCandidate(ctx, db.Candidate{
			ID:              c.ID,
			RunID:           runID,
			Source:          "reddit",
			Community:       c.SourceID,
			Title:           c.Title,
			Body:            c.Body,
			Score:           c.Score,
			NumReplies:      c.NumReplies,
			CreatedUTC:      c.CreatedAt,
			URL:             c.URL,
			Author:          c.Author,
			RelevanceScore:  c.RelevanceScore,
			DiscoveryMethod: c.DiscoveryMethod,
		})
		if err != nil {
			slog.Warn("failed to persist candidate", "id", c.ID, "error", err)
		}
	}
}

func (p *Pipeline) pause(ctx context.Context) {
	if p.generatePause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(p.generatePause):
	}
}
