package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/threadscout.db", cfg.DatabasePath)
		assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 5, cfg.MinUpvotes)
		assert.Equal(t, 20, cfg.MaxQuestions)
		assert.Equal(t, 8, cfg.SourceLimit)
		assert.Equal(t, 0.5, cfg.RelevanceThreshold)
		assert.Equal(t, 10*time.Minute, cfg.MinPostDelay)
		assert.Equal(t, 10, cfg.MaxDailyPosts)
		assert.Equal(t, 30*time.Minute, cfg.ScoutInterval)
		assert.Equal(t, 4*time.Hour, cfg.PostInterval)
		assert.Equal(t, "Casual", cfg.ResponseStyle)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("GEMINI_API_KEY", "test-key")
		os.Setenv("REDDIT_CLIENT_ID", "client-id")
		os.Setenv("MIN_POST_DELAY", "1h")
		os.Setenv("MAX_DAILY_POSTS", "3")
		os.Setenv("RELEVANCE_THRESHOLD", "1.2")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, "test-key", cfg.GeminiAPIKey)
		assert.Equal(t, "client-id", cfg.RedditClientID)
		assert.Equal(t, time.Hour, cfg.MinPostDelay)
		assert.Equal(t, 3, cfg.MaxDailyPosts)
		assert.Equal(t, 1.2, cfg.RelevanceThreshold)
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("MIN_POST_DELAY", "invalid")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MIN_POST_DELAY")
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("MAX_DAILY_POSTS", "notanumber")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_DAILY_POSTS")
	})

	t.Run("invalid float", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("MIN_QUALITY", "high")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MIN_QUALITY")
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{DatabasePath: "test.db"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_ValidateForScouting(t *testing.T) {
	cfg := &Config{DatabasePath: "test.db"}
	err := cfg.ValidateForScouting()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_CLIENT_ID")

	cfg.RedditClientID = "id"
	err = cfg.ValidateForScouting()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_CLIENT_SECRET")

	cfg.RedditClientSecret = "secret"
	assert.NoError(t, cfg.ValidateForScouting())
}

func TestConfig_ValidateForPosting(t *testing.T) {
	cfg := &Config{
		DatabasePath:       "test.db",
		RedditClientID:     "id",
		RedditClientSecret: "secret",
	}
	err := cfg.ValidateForPosting()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_USERNAME")

	cfg.RedditUsername = "bot"
	err = cfg.ValidateForPosting()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "REDDIT_PASSWORD")

	cfg.RedditPassword = "hunter2"
	assert.NoError(t, cfg.ValidateForPosting())
}

func TestConfig_ValidateForServe(t *testing.T) {
	cfg := &Config{
		DatabasePath:       "test.db",
		RedditClientID:     "id",
		RedditClientSecret: "secret",
		RedditUsername:     "bot",
		RedditPassword:     "hunter2",
	}
	assert.NoError(t, cfg.ValidateForServe())
}
