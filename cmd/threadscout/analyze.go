package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcrown/threadscout/internal/analyzer"
	"github.com/lcrown/threadscout/internal/config"
	"github.com/lcrown/threadscout/internal/profile"
)

var analyzeFile string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [description]",
	Short: "Analyze a business description",
	Long: `Build a business profile from a free-text description and print it
together with the derived search terms and target communities.

Examples:
  threadscout analyze "We sell inventory software for small retail shops"
  threadscout analyze --file business.txt`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Read the business description from a file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	description, err := resolveDescription(analyzeFile, args)
	if err != nil {
		return err
	}

	biz, err := analyzer.New(ctx, analyzer.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("create analyzer: %w", err)
	}

	p := biz.Analyze(ctx, description)
	search := profile.BuildSearchProfile(p)
	sources := profile.TargetSources(p, cfg.SourceLimit)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	fmt.Println()
	fmt.Println("Search terms:")
	for _, term := range search.Terms {
		fmt.Printf("  [tier %d] %s\n", term.Tier, term.Text)
	}

	fmt.Println()
	fmt.Println("Target communities:")
	for _, s := range sources {
		fmt.Printf("  r/%s\n", s)
	}

	return nil
}
