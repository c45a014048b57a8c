// Package scout discovers candidate discussion threads on external
// platforms and scores them for marketing opportunity.
package scout

import (
	"context"
	"time"
)

// CandidatePost is a unit of discourse fetched from an external platform.
type CandidatePost struct {
	ID         string
	Title      string
	Body       string
	SourceID   string
	Score      int
	NumReplies int
	CreatedAt  int64
	URL        string
	Author     string
	Flair      string
	IsTextual  bool
}

// CreatedTime returns the post creation time.
func (p CandidatePost) CreatedTime() time.Time {
	return time.Unix(p.CreatedAt, 0)
}

// ScoredCandidate is a candidate post that passed the quality gate,
// annotated with its relevance score and discovery provenance.
type ScoredCandidate struct {
	CandidatePost
	RelevanceScore  float64
	DiscoveryMethod string
}

// PostSource yields candidate posts from one external platform. A source
// may return zero results or duplicates across calls; the aggregator
// de-duplicates by post ID.
type PostSource interface {
	// Name identifies the source for logging and provenance tags.
	Name() string

	// Listing fetches recent posts from one community.
	Listing(ctx context.Context, sourceID string) ([]CandidatePost, error)

	// Search fetches posts from one community matching a query term.
	Search(ctx context.Context, sourceID, term string) ([]CandidatePost, error)
}
