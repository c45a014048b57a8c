package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database
	DatabasePath string

	// Gemini API (business analysis + response generation)
	GeminiAPIKey string
	GeminiModel  string

	// Reddit OAuth (read access)
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// Reddit account (posting)
	RedditUsername string
	RedditPassword string

	// Discovery settings
	MinUpvotes         int
	MaxQuestions       int
	SourceLimit        int
	DaysBack           int
	RelevanceThreshold float64
	FetchPause         time.Duration

	// Posting safety
	MinPostDelay  time.Duration
	MaxDailyPosts int
	MinQuality    float64

	// Response generation
	ResponseStyle string

	// Scheduler settings
	ScoutInterval time.Duration
	PostInterval  time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "data/threadscout.db"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "threadscout:v1.0.0"),
		RedditUsername:     getEnv("REDDIT_USERNAME", ""),
		RedditPassword:     getEnv("REDDIT_PASSWORD", ""),
		ResponseStyle:      getEnv("RESPONSE_STYLE", "Casual"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.MinUpvotes, err = getEnvInt("MIN_UPVOTES", 5); err != nil {
		return nil, err
	}
	if cfg.MaxQuestions, err = getEnvInt("MAX_QUESTIONS", 20); err != nil {
		return nil, err
	}
	if cfg.SourceLimit, err = getEnvInt("SOURCE_LIMIT", 8); err != nil {
		return nil, err
	}
	if cfg.DaysBack, err = getEnvInt("DAYS_BACK", 7); err != nil {
		return nil, err
	}
	if cfg.MaxDailyPosts, err = getEnvInt("MAX_DAILY_POSTS", 10); err != nil {
		return nil, err
	}

	if cfg.RelevanceThreshold, err = getEnvFloat("RELEVANCE_THRESHOLD", 0.5); err != nil {
		return nil, err
	}
	if cfg.MinQuality, err = getEnvFloat("MIN_QUALITY", 0.0); err != nil {
		return nil, err
	}

	if cfg.FetchPause, err = getEnvDuration("FETCH_PAUSE", "1s"); err != nil {
		return nil, err
	}
	if cfg.MinPostDelay, err = getEnvDuration("MIN_POST_DELAY", "10m"); err != nil {
		return nil, err
	}
	if cfg.ScoutInterval, err = getEnvDuration("SCOUT_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.PostInterval, err = getEnvDuration("POST_INTERVAL", "4h"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForScouting checks configuration needed for candidate discovery.
func (c *Config) ValidateForScouting() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.RedditClientID == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID is required for scouting")
	}
	if c.RedditClientSecret == "" {
		return fmt.Errorf("REDDIT_CLIENT_SECRET is required for scouting")
	}
	return nil
}

// ValidateForResponding checks configuration needed for response generation.
// The Gemini key is optional: without it the fallback templates are used.
func (c *Config) ValidateForResponding() error {
	return c.Validate()
}

// ValidateForPosting checks configuration needed for live publishing.
func (c *Config) ValidateForPosting() error {
	if err := c.ValidateForScouting(); err != nil {
		return err
	}
	if c.RedditUsername == "" {
		return fmt.Errorf("REDDIT_USERNAME is required for posting")
	}
	if c.RedditPassword == "" {
		return fmt.Errorf("REDDIT_PASSWORD is required for posting")
	}
	return nil
}

// ValidateForServe checks all configuration needed for serve mode.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForScouting(); err != nil {
		return err
	}
	return c.ValidateForPosting()
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key, defaultVal string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
