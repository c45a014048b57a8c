// Package guard protects the irreversible publish action with rate,
// duplicate and quality checks backed by persisted posting history.
package guard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lcrown/threadscout/internal/db"
)

// Rejection reasons returned in Decision.Reason.
const (
	ReasonOK          = "ok"
	ReasonRateLimited = "rate-limited"
	ReasonDailyLimit  = "daily-limit"
	ReasonDuplicate   = "duplicate"
	ReasonLowQuality  = "low-quality"
)

// Guard states reported by Status.
const (
	StatusCanPost      = "CAN_POST"
	StatusRateLimited  = "RATE_LIMITED"
	StatusDailyLimited = "DAILY_LIMIT_REACHED"
)

const (
	// DefaultMinPostDelay is the minimum gap between successive publishes.
	DefaultMinPostDelay = 600 * time.Second

	// DefaultMaxDailyPosts caps publishes per local calendar day.
	DefaultMaxDailyPosts = 10

	// similarityThreshold is the token-overlap (Jaccard) ratio above which
	// a reply counts as a duplicate of a recent one.
	similarityThreshold = 0.7

	// historyWindow is how many recent replies are checked for similarity.
	historyWindow = 20
)

// Decision is the structured outcome of an admission check. Rejections are
// normal control flow, never errors.
type Decision struct {
	Allowed bool
	Reason  string
	Detail  string
}

// Request is one publish attempt to be admitted.
type Request struct {
	CandidateID  string
	ResponseText string
	QualityScore float64
}

// Guard is the posting admission state machine. All state mutation happens
// under one mutex because the daily counter and the duplicate set must
// move together.
type Guard struct {
	mu sync.Mutex

	store *db.Store // nil disables persistence

	dailyCount int
	lastPostAt time.Time
	resetDate  string // local calendar date of the current counter window
	postedIDs  map[string]bool
	recent     []string // last historyWindow responses, newest first

	minDelay   time.Duration
	maxDaily   int
	minQuality float64
	now        func() time.Time
}

// Config holds guard configuration.
type Config struct {
	Store        *db.Store
	MinPostDelay time.Duration // default DefaultMinPostDelay
	MaxDaily     int           // default DefaultMaxDailyPosts
	MinQuality   float64       // overall quality floor; 0 disables the check
	Now          func() time.Time
}

// New creates a guard and loads persisted posting history. A corrupt or
// missing history degrades to a fresh state rather than failing startup.
func New(ctx context.Context, cfg Config) *Guard {
	minDelay := cfg.MinPostDelay
	if minDelay == 0 {
		minDelay = DefaultMinPostDelay
	}
	maxDaily := cfg.MaxDaily
	if maxDaily == 0 {
		maxDaily = DefaultMaxDailyPosts
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	g := &Guard{
		store:      cfg.Store,
		postedIDs:  make(map[string]bool),
		minDelay:   minDelay,
		maxDaily:   maxDaily,
		minQuality: cfg.MinQuality,
		now:        now,
		resetDate:  localDate(now()),
	}

	if cfg.Store != nil {
		if err := g.load(ctx); err != nil {
			slog.Warn("failed to load posting history, starting fresh", "error", err)
		}
	}

	return g
}

func (g *Guard) load(ctx context.Context) error {
	replies, err := g.store.ListReplies(ctx, 0)
	if err != nil {
		return err
	}

	today := localDate(g.now())
	for i, r := range replies {
		g.postedIDs[r.CandidateID] = true
		if i == 0 {
			g.lastPostAt = r.PostedAt
		}
		if i < historyWindow {
			g.recent = append(g.recent, r.Response)
		}
		if localDate(r.PostedAt) == today {
			g.dailyCount++
		}
	}

	slog.Info("posting history loaded",
		"total", len(replies),
		"today", g.dailyCount,
	)
	return nil
}

// Accept decides whether a publish attempt may proceed. Every outcome
// carries a reason; a true result does not reserve the slot until Record
// is called.
func (g *Guard) Accept(req Request) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.rollover(now)

	// Duplicate is permanent, so it wins over the transient limits.
	if g.postedIDs[req.CandidateID] {
		return Decision{Reason: ReasonDuplicate,
			Detail: "already replied to this post"}
	}

	if g.dailyCount >= g.maxDaily {
		return Decision{Reason: ReasonDailyLimit,
			Detail: "daily posting limit reached"}
	}

	if !g.lastPostAt.IsZero() {
		if elapsed := now.Sub(g.lastPostAt); elapsed < g.minDelay {
			return Decision{Reason: ReasonRateLimited,
				Detail: "next post allowed in " + (g.minDelay - elapsed).Round(time.Second).String()}
		}
	}

	for _, prev := range g.recent {
		if tokenOverlap(req.ResponseText, prev) >= similarityThreshold {
			return Decision{Reason: ReasonDuplicate,
				Detail: "response too similar to a recent reply"}
		}
	}

	if g.minQuality > 0 && req.QualityScore < g.minQuality {
		return Decision{Reason: ReasonLowQuality,
			Detail: "overall quality score below threshold"}
	}

	return Decision{Allowed: true, Reason: ReasonOK}
}

// Record commits a successful publish: counters, duplicate set and history
// move together, then the reply is persisted. A persistence failure is
// logged and tolerated; losing the latest record beats crashing mid-run.
func (g *Guard) Record(ctx context.Context, reply db.PostedReply) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.rollover(now)

	if reply.PostedAt.IsZero() {
		reply.PostedAt = now
	}

	g.dailyCount++
	g.lastPostAt = reply.PostedAt
	g.postedIDs[reply.CandidateID] = true
	g.recent = append([]string{reply.Response}, g.recent...)
	if len(g.recent) > historyWindow {
		g.recent = g.recent[:historyWindow]
	}

	if g.store != nil {
		if err := g.store.RecordReply(ctx, reply); err != nil {
			slog.Error("failed to persist posted reply", "candidate", reply.CandidateID, "error", err)
		}
	}
}

// Status reports the guard's current state name.
func (g *Guard) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.rollover(now)

	if g.dailyCount >= g.maxDaily {
		return StatusDailyLimited
	}
	if !g.lastPostAt.IsZero() && now.Sub(g.lastPostAt) < g.minDelay {
		return StatusRateLimited
	}
	return StatusCanPost
}

// Stats reports the counters behind the guard's decisions.
type Stats struct {
	DailyCount int
	MaxDaily   int
	LastPostAt time.Time
	TotalKnown int
}

// Snapshot returns the current counters.
func (g *Guard) Snapshot() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollover(g.now())
	return Stats{
		DailyCount: g.dailyCount,
		MaxDaily:   g.maxDaily,
		LastPostAt: g.lastPostAt,
		TotalKnown: len(g.postedIDs),
	}
}

// rollover resets daily counters when the local calendar date changes.
// Callers must hold the mutex.
func (g *Guard) rollover(now time.Time) {
	if date := localDate(now); date != g.resetDate {
		g.dailyCount = 0
		g.resetDate = date
		slog.Debug("daily posting counter reset", "date", date)
	}
}

func localDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// tokenOverlap is the Jaccard similarity of the lowercase token sets of
// two texts.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}
