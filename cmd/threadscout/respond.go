package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lcrown/threadscout/internal/app"
	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/pipeline"
)

var (
	respondFile  string
	respondLimit int
)

var respondCmd = &cobra.Command{
	Use:   "respond [description]",
	Short: "Discover discussions and draft replies",
	Long: `Run discovery and draft a humanized reply for each candidate, with
quality metrics. Nothing is published; use 'run --publish' for that.

Examples:
  threadscout respond "We sell inventory software for small retail shops"
  threadscout respond --file business.txt --limit 5`,
	RunE: runRespond,
}

func init() {
	respondCmd.Flags().StringVar(&respondFile, "file", "", "Read the business description from a file")
	respondCmd.Flags().IntVar(&respondLimit, "limit", 0, "Draft replies for at most this many candidates (0 = all)")
	rootCmd.AddCommand(respondCmd)
}

func runRespond(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForScouting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if err := cfg.ValidateForResponding(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	description, err := resolveDescription(respondFile, args)
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	pipe := pipeline.New(pipeline.Config{
		Analyzer:      a.Analyzer,
		Aggregator:    a.Aggregator,
		Responder:     a.Responder,
		Guard:         a.Guard,
		Store:         a.Store,
		SourceLimit:   cfg.SourceLimit,
		GeneratePause: cfg.FetchPause,
	})

	result, err := pipe.Run(ctx, description, pipeline.Options{Respond: true})
	if err != nil {
		return fmt.Errorf("respond: %w", err)
	}

	responses := result.Responses
	if respondLimit > 0 && len(responses) > respondLimit {
		responses = responses[:respondLimit]
	}

	byID := make(map[string]int, len(result.Candidates))
	for i, c := range result.Candidates {
		byID[c.ID] = i
	}

	for _, resp := range responses {
		c := result.Candidates[byID[resp.CandidateID]]
		fmt.Printf("=== r/%s: %s\n", c.SourceID, c.Title)
		fmt.Printf("    relevance %.2f | quality %.2f | angle: %s", c.RelevanceScore, resp.Metrics.Overall, resp.MarketingAngle)
		if resp.Fallback {
			fmt.Print(" | fallback template")
		}
		fmt.Println()
		fmt.Println()
		fmt.Println(resp.HumanizedText)
		fmt.Println()
	}

	return nil
}
