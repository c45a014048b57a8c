package db

import (
	"context"
	"fmt"
	"time"
)

// Candidate is a stored discovered post.
type Candidate struct {
	ID              string
	RunID           string
	Source          string
	Community       string
	Title           string
	Body            string
	Score           int
	NumReplies      int
	CreatedUTC      int64
	URL             string
	Author          string
	RelevanceScore  float64
	DiscoveryMethod string
}

// PostedReply is one published reply, the unit of posting history.
type PostedReply struct {
	ID           int64
	CandidateID  string
	Community    string
	Title        string
	Response     string
	CommentID    string
	CommentURL   string
	QualityScore float64
	PostedAt     time.Time
}

// SaveCandidate inserts or refreshes a discovered candidate.
func (s *Store) SaveCandidate(ctx context.Context, c Candidate) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO candidates (
			id, run_id, source, community, title, body, score, num_replies,
			created_utc, url, author, relevance_score, discovery_method
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			score = excluded.score,
			num_replies = excluded.num_replies,
			relevance_score = excluded.relevance_score,
			discovery_method = excluded.discovery_method`,
		c.ID, c.RunID, c.Source, c.Community, c.Title, c.Body, c.Score, c.NumReplies,
		c.CreatedUTC, c.URL, c.Author, c.RelevanceScore, c.DiscoveryMethod,
	)
	if err != nil {
		return fmt.Errorf("save candidate: %w", err)
	}
	return nil
}

// ListCandidatesByRun returns a run's candidates by descending relevance.
func (s *Store) ListCandidatesByRun(ctx context.Context, runID string) ([]Candidate, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, run_id, source, community, title, body, score, num_replies,
			created_utc, url, author, relevance_score, discovery_method
		FROM candidates
		WHERE run_id = ?
		ORDER BY relevance_score DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(
			&c.ID, &c.RunID, &c.Source, &c.Community, &c.Title, &c.Body,
			&c.Score, &c.NumReplies, &c.CreatedUTC, &c.URL, &c.Author,
			&c.RelevanceScore, &c.DiscoveryMethod,
		); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// RecordReply stores one published reply.
func (s *Store) RecordReply(ctx context.Context, r PostedReply) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO posted_replies (
			candidate_id, community, title, response, comment_id, comment_url,
			quality_score, posted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.CandidateID, r.Community, r.Title, r.Response, r.CommentID, r.CommentURL,
		r.QualityScore, r.PostedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("record reply: %w", err)
	}
	return nil
}

// ListReplies returns published replies, newest first, up to limit
// (limit <= 0 means all).
func (s *Store) ListReplies(ctx context.Context, limit int) ([]PostedReply, error) {
	query := `
		SELECT id, candidate_id, community, title, response, comment_id,
			comment_url, quality_score, posted_at
		FROM posted_replies
		ORDER BY posted_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	var out []PostedReply
	for rows.Next() {
		var r PostedReply
		var postedAt int64
		if err := rows.Scan(
			&r.ID, &r.CandidateID, &r.Community, &r.Title, &r.Response,
			&r.CommentID, &r.CommentURL, &r.QualityScore, &postedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reply: %w", err)
		}
		r.PostedAt = time.Unix(postedAt, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountReplies returns the total number of published replies.
func (s *Store) CountReplies(ctx context.Context) (int, error) {
	var count int
	err := s.QueryRowContext(ctx, "SELECT COUNT(*) FROM posted_replies").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}
