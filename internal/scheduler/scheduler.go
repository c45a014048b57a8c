// Package scheduler runs the long-lived serve loop: periodic discovery
// cycles feed a candidate queue, periodic post cycles drain it through
// the posting guard.
package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lcrown/threadscout/internal/db"
	"github.com/lcrown/threadscout/internal/guard"
	"github.com/lcrown/threadscout/internal/pipeline"
	"github.com/lcrown/threadscout/internal/poster"
	"github.com/lcrown/threadscout/internal/profile"
	"github.com/lcrown/threadscout/internal/respond"
	"github.com/lcrown/threadscout/internal/scout"
)

// Scheduler orchestrates the periodic discovery and posting cycles.
type Scheduler struct {
	description string
	analyzer    pipeline.BusinessAnalyzer
	aggregator  *scout.Aggregator
	responder   *respond.Responder
	guard       *guard.Guard
	poster      poster.Poster
	store       *db.Store
	health      *Health

	scoutInterval time.Duration
	postInterval  time.Duration
	sourceLimit   int

	business *profile.BusinessProfile
	search   profile.SearchProfile
	sources  []string

	pending []scout.ScoredCandidate
	handled map[string]bool

	lastPost time.Time
}

// Config holds scheduler configuration.
type Config struct {
	Description   string
	Analyzer      pipeline.BusinessAnalyzer
	Aggregator    *scout.Aggregator
	Responder     *respond.Responder
	Guard         *guard.Guard
	Poster        poster.Poster
	Store         *db.Store
	ScoutInterval time.Duration
	PostInterval  time.Duration
	SourceLimit   int
}

// New creates a scheduler.
func New(cfg Config) *Scheduler {
	sourceLimit := cfg.SourceLimit
	if sourceLimit <= 0 {
		sourceLimit = 8
	}
	return &Scheduler{
		description:   cfg.Description,
		analyzer:      cfg.Analyzer,
		aggregator:    cfg.Aggregator,
		responder:     cfg.Responder,
		guard:         cfg.Guard,
		poster:        cfg.Poster,
		store:         cfg.Store,
		health:        NewHealth(),
		scoutInterval: cfg.ScoutInterval,
		postInterval:  cfg.PostInterval,
		sourceLimit:   sourceLimit,
		handled:       make(map[string]bool),
	}
}

// Run starts the scheduler main loop. It blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("starting scheduler",
		"scout_interval", s.scoutInterval,
		"post_interval", s.postInterval,
	)

	// Validate posting credentials on startup
	if err := s.poster.ValidateCredentials(ctx); err != nil {
		s.health.SetUnhealthy(s.poster.Platform(), err)
		slog.Error("failed to validate posting credentials", "error", err)
	} else {
		s.health.SetHealthy(s.poster.Platform(), "authenticated")
	}

	// Build the business profile once; discovery cycles reuse it
	s.business = s.analyzer.Analyze(ctx, s.description)
	s.search = profile.BuildSearchProfile(s.business)
	s.sources = profile.TargetSources(s.business, s.sourceLimit)
	s.health.SetHealthy("profile", "analyzed")
	slog.Info("business profile ready",
		"industry", s.business.IndustryCategory,
		"search_terms", len(s.search.Terms),
		"communities", len(s.sources),
	)

	scoutTicker := time.NewTicker(s.scoutInterval)
	postTicker := time.NewTicker(s.postInterval)
	defer scoutTicker.Stop()
	defer postTicker.Stop()

	// Run initial discovery
	s.runScoutCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler shutting down")
			return ctx.Err()

		case <-scoutTicker.C:
			s.runScoutCycle(ctx)

		case <-postTicker.C:
			s.runPostCycle(ctx)
		}
	}
}

// runScoutCycle discovers candidates and merges new ones into the queue.
func (s *Scheduler) runScoutCycle(ctx context.Context) {
	slog.Debug("running scout cycle")

	candidates, err := s.aggregator.Discover(ctx, s.business, s.search, s.sources)
	if err != nil {
		s.health.SetUnhealthy("scout", err)
		slog.Error("scout cycle failed", "error", err)
		return
	}

	runID := uuid.NewString()
	added := 0
	for _, c := range candidates {
		if s.handled[c.ID] || s.queued(c.ID) {
			continue
		}
		s.pending = append(s.pending, c)
		added++

		if s.store != nil {
			err := s.store.SaveCandidate(ctx, db.Candidate{
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

	sort.SliceStable(s.pending, func(i, j int) bool {
		return s.pending[i].RelevanceScore > s.pending[j].RelevanceScore
	})

	s.health.SetHealthy("scout", "fetched candidates")
	slog.Info("scout cycle complete", "discovered", len(candidates), "new", added, "queued", len(s.pending))
}

// runPostCycle responds to the best queued candidate and publishes it.
// Candidates rejected for post-specific reasons are dropped; global
// limits leave the queue intact for the next cycle.
func (s *Scheduler) runPostCycle(ctx context.Context) {
	slog.Debug("running post cycle")

	for len(s.pending) > 0 {
		candidate := s.pending[0]

		resp := s.responder.Respond(ctx, candidate.CandidatePost, s.business)

		decision := s.guard.Accept(guard.Request{
			CandidateID:  candidate.ID,
			ResponseText: resp.HumanizedText,
			QualityScore: resp.Metrics.Overall,
		})
		if !decision.Allowed {
			switch decision.Reason {
			case guard.ReasonRateLimited, guard.ReasonDailyLimit:
				slog.Info("posting paused", "reason", decision.Reason, "detail", decision.Detail)
				return
			default:
				// Post-specific rejection: drop and try the next one
				slog.Info("candidate rejected", "id", candidate.ID, "reason", decision.Reason)
				s.dropFront()
				continue
			}
		}

		result, err := s.poster.Publish(ctx, poster.Reply{
			CandidateID: candidate.ID,
			Text:        resp.HumanizedText,
		})
		if err != nil {
			s.health.SetUnhealthy("post", err)
			slog.Error("failed to publish reply", "id", candidate.ID, "error", err)
			s.dropFront()
			return
		}

		s.guard.Record(ctx, db.PostedReply{
			CandidateID:  candidate.ID,
			Community:    candidate.SourceID,
			Title:        candidate.Title,
			Response:     resp.HumanizedText,
			CommentID:    result.CommentID,
			CommentURL:   result.CommentURL,
			QualityScore: resp.Metrics.Overall,
		})
		s.dropFront()
		s.lastPost = time.Now()
		s.health.SetHealthy("post", "posted successfully")

		slog.Info("posted reply",
			"url", result.CommentURL,
			"community", candidate.SourceID,
			"relevance", candidate.RelevanceScore,
			"quality", resp.Metrics.Overall,
		)
		return
	}

	slog.Debug("no queued candidates to post about")
}

func (s *Scheduler) dropFront() {
	s.handled[s.pending[0].ID] = true
	s.pending = s.pending[1:]
}

func (s *Scheduler) queued(id string) bool {
	for _, c := range s.pending {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Health returns the health tracker.
func (s *Scheduler) Health() *Health {
	return s.health
}
