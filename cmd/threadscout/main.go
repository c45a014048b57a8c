package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "threadscout",
	Short: "Find and answer relevant Reddit discussions for a business",
	Long: `ThreadScout analyzes a business description, discovers Reddit threads
where the business can genuinely help, drafts natural-sounding replies,
and publishes them under strict rate and quality limits.`,
}

func init() {
	// Load .env file if present
	_ = godotenv.Load()

	// Set up logging
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// resolveDescription picks the business description from --file, the
// positional args, or stdin-free failure, in that order.
func resolveDescription(file string, args []string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read description file: %w", err)
		}
		desc := strings.TrimSpace(string(data))
		if desc == "" {
			return "", fmt.Errorf("description file %s is empty", file)
		}
		return desc, nil
	}
	desc := strings.TrimSpace(strings.Join(args, " "))
	if desc == "" {
		return "", fmt.Errorf("a business description is required (pass it as an argument or via --file)")
	}
	return desc, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
