package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcrown/threadscout/internal/app"
	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/pipeline"
)

var scoutFile string

var scoutCmd = &cobra.Command{
	Use:   "scout [description]",
	Short: "Discover relevant discussions",
	Long: `Analyze the business, search its target communities, and print the
discovered candidate posts ranked by relevance. Candidates are saved
to the database for later inspection.

Examples:
  threadscout scout "We sell inventory software for small retail shops"
  threadscout scout --file business.txt`,
	RunE: runScout,
}

func init() {
	scoutCmd.Flags().StringVar(&scoutFile, "file", "", "Read the business description from a file")
	rootCmd.AddCommand(scoutCmd)
}

func runScout(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForScouting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	description, err := resolveDescription(scoutFile, args)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	pipe := pipeline.New(pipeline.Config{
		Analyzer:    a.Analyzer,
		Aggregator:  a.Aggregator,
		Responder:   a.Responder,
		Guard:       a.Guard,
		Store:       a.Store,
		SourceLimit: cfg.SourceLimit,
	})

	result, err := pipe.Run(ctx, description, pipeline.Options{})
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}

	fmt.Printf("Run %s: %d candidates\n\n", result.RunID, len(result.Candidates))
	for i, c := range result.Candidates {
		fmt.Printf("%2d. [%.2f] r/%s: %s\n", i+1, c.RelevanceScore, c.SourceID, c.Title)
		fmt.Printf("    %s (score %d, %d replies, via %s)\n", c.URL, c.Score, c.NumReplies, c.DiscoveryMethod)
	}

	return nil
}
