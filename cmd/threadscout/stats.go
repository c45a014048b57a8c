package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/db"
	"github.com/lcrown/threadscout/internal/guard"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	Long:  `Display statistics about discovered candidates and posted replies.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := db.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var totalCandidates int64
	err = store.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates").Scan(&totalCandidates)
	if err != nil {
		slog.Warn("failed to count candidates", "error", err)
	}

	totalReplies, err := store.CountReplies(ctx)
	if err != nil {
		return fmt.Errorf("count replies: %w", err)
	}

	g := guard.New(ctx, guard.Config{
		Store:        store,
		MinPostDelay: cfg.MinPostDelay,
		MaxDaily:     cfg.MaxDailyPosts,
		MinQuality:   cfg.MinQuality,
	})
	snap := g.Snapshot()

	fmt.Println("=== ThreadScout Statistics ===")
	fmt.Println()
	fmt.Printf("Candidates discovered: %d\n", totalCandidates)
	fmt.Printf("Replies posted:        %d\n", totalReplies)
	fmt.Printf("Posted today:          %d / %d\n", snap.DailyCount, snap.MaxDaily)
	if !snap.LastPostAt.IsZero() {
		fmt.Printf("Last post:             %s\n", snap.LastPostAt.Format(time.RFC3339))
	}
	fmt.Printf("Posting status:        %s\n", g.Status())
	fmt.Println()

	recent, err := store.ListReplies(ctx, 5)
	if err != nil {
		return fmt.Errorf("list replies: %w", err)
	}
	if len(recent) > 0 {
		fmt.Println("Recent replies:")
		for _, r := range recent {
			fmt.Printf("  %s  r/%-20s  q=%.2f  %s\n",
				r.PostedAt.Format("2006-01-02 15:04"), r.Community, r.QualityScore, r.CommentURL)
		}
	}

	return nil
}
