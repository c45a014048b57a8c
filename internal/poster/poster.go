// Package poster publishes replies to external platforms.
package poster

import (
	"context"
)

// Reply is the content to publish under a candidate post.
type Reply struct {
	CandidateID string
	Text        string
}

// Result describes a published reply.
type Result struct {
	CommentID  string
	CommentURL string
}

// Poster is the interface for publishing replies to a platform.
type Poster interface {
	// Platform returns the name of the platform.
	Platform() string

	// Publish posts a reply under the candidate post.
	Publish(ctx context.Context, reply Reply) (*Result, error)

	// ValidateCredentials checks if the credentials are valid.
	ValidateCredentials(ctx context.Context) error
}
