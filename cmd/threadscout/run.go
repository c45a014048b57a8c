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
	runFile    string
	runPublish bool
	runDryRun  bool
)

var runCmd = &cobra.Command{
	Use:   "run [description]",
	Short: "Run one full discover-respond-publish cycle",
	Long: `Run the full pipeline once: analyze the business, discover candidate
discussions, draft replies, and push them through the posting guard.

Examples:
  threadscout run "We sell inventory software"              # draft only
  threadscout run --publish "We sell inventory software"    # post for real
  threadscout run --publish --dry-run "We sell..."          # guard check only`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runFile, "file", "", "Read the business description from a file")
	runCmd.Flags().BoolVar(&runPublish, "publish", false, "Publish accepted replies to Reddit")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Check guard admission without posting")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ValidateForScouting(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if runPublish && !runDryRun {
		if err := cfg.ValidateForPosting(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	description, err := resolveDescription(runFile, args)
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
		Poster:        a.Poster,
		Store:         a.Store,
		SourceLimit:   cfg.SourceLimit,
		GeneratePause: cfg.FetchPause,
	})

	result, err := pipe.Run(ctx, description, pipeline.Options{
		Respond: true,
		Publish: runPublish,
		DryRun:  runDryRun,
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Printf("Run %s: %d candidates, %d replies drafted\n",
		result.RunID, len(result.Candidates), len(result.Responses))

	if runPublish {
		posted := 0
		for _, outcome := range result.Publishes {
			switch {
			case outcome.Error != "":
				fmt.Printf("  %s: publish failed: %s\n", outcome.CandidateID, outcome.Error)
			case !outcome.Allowed:
				fmt.Printf("  %s: rejected (%s)\n", outcome.CandidateID, outcome.Reason)
			case outcome.DryRun:
				fmt.Printf("  %s: would publish\n", outcome.CandidateID)
			default:
				fmt.Printf("  %s: published %s\n", outcome.CandidateID, outcome.CommentURL)
				posted++
			}
		}
		if !runDryRun {
			fmt.Printf("Published %d replies. Guard status: %s\n", posted, a.Guard.Status())
		}
	}

	return nil
}
