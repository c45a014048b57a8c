package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lcrown/threadscout/internal/app"
	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/scheduler"
)

var serveFile string

var serveCmd = &cobra.Command{
	Use:   "serve [description]",
	Short: "Run the daemon",
	Long: `Run the ThreadScout daemon: discover candidates on a schedule and
publish guarded replies on a separate posting schedule.

Examples:
  threadscout serve --file business.txt`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFile, "file", "", "Read the business description from a file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForServe(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	description, err := resolveDescription(serveFile, args)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	slog.Info("starting ThreadScout daemon",
		"scout_interval", cfg.ScoutInterval,
		"post_interval", cfg.PostInterval,
		"max_daily_posts", cfg.MaxDailyPosts,
	)

	sched := scheduler.New(scheduler.Config{
		Description:   description,
		Analyzer:      a.Analyzer,
		Aggregator:    a.Aggregator,
		Responder:     a.Responder,
		Guard:         a.Guard,
		Poster:        a.Poster,
		Store:         a.Store,
		ScoutInterval: cfg.ScoutInterval,
		PostInterval:  cfg.PostInterval,
		SourceLimit:   cfg.SourceLimit,
	})

	// Run scheduler in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- sched.Run(ctx)
	}()

	// Wait for shutdown signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("scheduler error: %w", err)
		}
	}

	slog.Info("shutting down...")
	cancel()

	return nil
}
