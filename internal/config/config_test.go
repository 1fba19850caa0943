package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token-123")
		t.Setenv("HABIT_API_URL", "http://localhost:8000/")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "")
		t.Setenv("REPORT_INTERVAL_HOURS", "")
		t.Setenv("REPORT_TIME", "")
		t.Setenv("DEVELOPMENT", "")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "token-123", cfg.TelegramToken)
		assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL, "trailing slash is trimmed")
		assert.Equal(t, "habit_bot.db", cfg.DatabaseURL)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 24*time.Hour, cfg.ReportInterval)
		assert.False(t, cfg.Development)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "")
		t.Setenv("HABIT_API_URL", "http://localhost:8000")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing backend url", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token-123")
		t.Setenv("HABIT_API_URL", "")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("report time disables the interval default", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token-123")
		t.Setenv("HABIT_API_URL", "http://localhost:8000")
		t.Setenv("REPORT_TIME", "09:30")
		t.Setenv("REPORT_INTERVAL_HOURS", "")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "09:30", cfg.ReportTime)
		assert.Zero(t, cfg.ReportInterval)
	})

	t.Run("explicit overrides", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token-123")
		t.Setenv("HABIT_API_URL", "http://localhost:8000")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "5")
		t.Setenv("REPORT_INTERVAL_HOURS", "6")
		t.Setenv("REPORT_TIME", "")
		t.Setenv("DEVELOPMENT", "true")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 6*time.Hour, cfg.ReportInterval)
		assert.True(t, cfg.Development)
	})

	t.Run("garbage durations fall back", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "token-123")
		t.Setenv("HABIT_API_URL", "http://localhost:8000")
		t.Setenv("HTTP_TIMEOUT_SECONDS", "-1")
		t.Setenv("REPORT_INTERVAL_HOURS", "soon")
		t.Setenv("REPORT_TIME", "")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 24*time.Hour, cfg.ReportInterval)
	})
}
