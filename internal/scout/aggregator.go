package scout

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/lcrown/threadscout/internal/profile"
)

// Aggregator discovers candidate posts across sources and communities,
// gates, scores and ranks them for one business profile.
type Aggregator struct {
	sources    []PostSource
	gate       *Gate
	threshold  float64
	maxResults int
	daysBack   int
	fetchPause time.Duration
	now        func() time.Time
}

// AggregatorConfig holds aggregator configuration.
type AggregatorConfig struct {
	Sources    []PostSource
	MinUpvotes int
	Threshold  float64       // relevance admission threshold (default DefaultRelevanceThreshold)
	MaxResults int           // cap on returned candidates (default 20)
	DaysBack   int           // discard posts older than this (default 7)
	FetchPause time.Duration // pause between source calls to respect rate limits
	Now        func() time.Time
}

// NewAggregator creates a new aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = DefaultRelevanceThreshold
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	daysBack := cfg.DaysBack
	if daysBack <= 0 {
		daysBack = 7
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		sources:    cfg.Sources,
		gate:       NewGate(cfg.MinUpvotes),
		threshold:  threshold,
		maxResults: maxResults,
		daysBack:   daysBack,
		fetchPause: cfg.FetchPause,
		now:        now,
	}
}

// Discover searches the profile's target communities for relevant posts.
// Individual source failures are logged and skipped; the result is ranked
// by descending relevance with original discovery order breaking ties,
// then truncated to the configured maximum.
func (a *Aggregator) Discover(ctx context.Context, business *profile.BusinessProfile, search profile.SearchProfile, sourceIDs []string) ([]ScoredCandidate, error) {
	now := a.now()
	cutoff := now.AddDate(0, 0, -a.daysBack)

	seen := make(map[string]bool)
	var candidates []ScoredCandidate

	admit := func(post CandidatePost, method string) {
		if seen[post.ID] {
			return
		}
		seen[post.ID] = true

		if post.CreatedTime().Before(cutoff) {
			return
		}
		if result := a.gate.Check(post); !result.Pass {
			slog.Debug("post rejected by quality gate",
				"id", post.ID,
				"reason", result.Reason,
			)
			return
		}
		score := Score(post, business, now)
		if score <= a.threshold {
			return
		}
		candidates = append(candidates, ScoredCandidate{
			CandidatePost:   post,
			RelevanceScore:  score,
			DiscoveryMethod: method,
		})
	}

	searchTerms := search.TopTexts(3)

	fetches, failures := 0, 0

	for _, source := range a.sources {
		for _, sourceID := range sourceIDs {
			if err := ctx.Err(); err != nil {
				return candidates, err
			}

			posts, err := source.Listing(ctx, sourceID)
			fetches++
			if err != nil {
				failures++
				slog.Warn("listing fetch failed",
					"source", source.Name(),
					"community", sourceID,
					"error", err,
				)
			}
			for _, post := range posts {
				admit(post, "listing")
			}
			a.pause(ctx)

			for _, term := range searchTerms {
				results, err := source.Search(ctx, sourceID, term)
				fetches++
				if err != nil {
					failures++
					slog.Warn("term search failed",
						"source", source.Name(),
						"community", sourceID,
						"term", term,
						"error", err,
					)
					continue
				}
				for _, post := range results {
					admit(post, "search:"+term)
				}
				a.pause(ctx)
			}
		}
	}

	// Partial failures are tolerated, but a run where every fetch failed
	// should not masquerade as "no relevant posts".
	if fetches > 0 && failures == fetches {
		return nil, errors.New("all source fetches failed")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})
	if len(candidates) > a.maxResults {
		candidates = candidates[:a.maxResults]
	}

	slog.Info("candidate discovery complete",
		"communities", len(sourceIDs),
		"admitted", len(candidates),
	)

	return candidates, nil
}

func (a *Aggregator) pause(ctx context.Context) {
	if a.fetchPause <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(a.fetchPause):
	}
}
