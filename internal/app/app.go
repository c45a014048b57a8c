package app

import (
	"context"

	"github.com/lcrown/threadscout/internal/analyzer"
	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/db"
	"github.com/lcrown/threadscout/internal/guard"
	"github.com/lcrown/threadscout/internal/poster"
	"github.com/lcrown/threadscout/internal/respond"
	"github.com/lcrown/threadscout/internal/scout"
)

// App is the main application container holding all dependencies.
type App struct {
	Config     *config.Config
	Store      *db.Store
	Analyzer   *analyzer.Analyzer
	Aggregator *scout.Aggregator
	Responder  *respond.Responder
	Guard      *guard.Guard
	Poster     poster.Poster
}

// New creates an application instance with all dependencies wired up.
// The responder lacks a generator if no Gemini key is configured;
// commands that need one validate with cfg.ValidateForResponding first.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	biz, err := analyzer.New(ctx, analyzer.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	var sources []scout.PostSource
	if cfg.RedditClientID != "" && cfg.RedditClientSecret != "" {
		sources = append(sources, scout.NewRedditSource(scout.RedditConfig{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			UserAgent:    cfg.RedditUserAgent,
		}))
	}

	agg := scout.NewAggregator(scout.AggregatorConfig{
		Sources:    sources,
		MinUpvotes: cfg.MinUpvotes,
		Threshold:  cfg.RelevanceThreshold,
		MaxResults: cfg.MaxQuestions,
		DaysBack:   cfg.DaysBack,
		FetchPause: cfg.FetchPause,
	})

	var gen respond.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gen, err = respond.NewGeminiGenerator(ctx, respond.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		})
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	responder := respond.NewResponder(respond.ResponderConfig{
		Generator: gen,
		Style:     cfg.ResponseStyle,
	})

	g := guard.New(ctx, guard.Config{
		Store:        store,
		MinPostDelay: cfg.MinPostDelay,
		MaxDaily:     cfg.MaxDailyPosts,
		MinQuality:   cfg.MinQuality,
	})

	rp := poster.NewRedditPoster(poster.RedditConfig{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		Username:     cfg.RedditUsername,
		Password:     cfg.RedditPassword,
		UserAgent:    cfg.RedditUserAgent,
	})

	return &App{
		Config:     cfg,
		Store:      store,
		Analyzer:   biz,
		Aggregator: agg,
		Responder:  responder,
		Guard:      g,
		Poster:     rp,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
