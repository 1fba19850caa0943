package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config keeps runtime settings for the bot. The habit backend base URL is a
// single required value here; it must never be baked into individual screens.
type Config struct {
	TelegramToken  string
	APIBaseURL     string
	DatabaseURL    string
	HTTPTimeout    time.Duration
	ReportInterval time.Duration
	ReportTime     string // optional HH:MM for a fixed daily report instead of an interval
	Development    bool
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sane defaults.
func Load() (Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		TelegramToken:  strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		APIBaseURL:     strings.TrimSpace(os.Getenv("HABIT_API_URL")),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPTimeout:    parseSeconds(os.Getenv("HTTP_TIMEOUT_SECONDS"), 15*time.Second),
		ReportInterval: parseHours(os.Getenv("REPORT_INTERVAL_HOURS")),
		ReportTime:     strings.TrimSpace(os.Getenv("REPORT_TIME")),
		Development:    parseBool(os.Getenv("DEVELOPMENT")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "habit_bot.db"
	}

	if cfg.ReportInterval == 0 && cfg.ReportTime == "" {
		cfg.ReportInterval = 24 * time.Hour
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.APIBaseURL == "" {
		return cfg, fmt.Errorf("HABIT_API_URL is required")
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

func parseSeconds(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
