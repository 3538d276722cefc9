// Package config loads application configuration from the environment. A
// .env file in the working directory is picked up automatically for local
// development; real deployments set the variables directly.
package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

const (
	// DefaultWeeklyBudget is the planning budget when WEEKLY_BUDGET is unset.
	DefaultWeeklyBudget = 100.0

	// DefaultServings is the household size when SERVINGS is unset.
	DefaultServings = 4

	// DefaultDatabasePath is where the SQLite file lives when DATABASE_PATH is unset.
	DefaultDatabasePath = "data/meal-planner.db"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	WeeklyBudget float64
	Servings     int

	// LLM keys are optional: planning and costing are fully local, the
	// keys only unlock the advisor, recipe import and discovery.
	GeminiAPIKey string
	GroqAPIKey   string

	// Ghost blog config, optional; used by recipe ingestion.
	GhostURL        string
	GhostContentKey string
	GhostAdminKey   string

	// Telegram config, optional for the CLI, required for the bot.
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		DatabasePath:       envOr("DATABASE_PATH", DefaultDatabasePath),
		WeeklyBudget:       DefaultWeeklyBudget,
		Servings:           DefaultServings,
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GhostURL:           os.Getenv("GHOST_API_URL"),
		GhostContentKey:    os.Getenv("GHOST_CONTENT_API_KEY"),
		GhostAdminKey:      os.Getenv("GHOST_ADMIN_API_KEY"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	if cfg.GhostAdminKey == "" {
		// Fallback to content key if only one is provided
		cfg.GhostAdminKey = cfg.GhostContentKey
	}

	if v := os.Getenv("WEEKLY_BUDGET"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil || budget <= 0 {
			return nil, fmt.Errorf("WEEKLY_BUDGET must be a positive number, got %q", v)
		}
		cfg.WeeklyBudget = budget
	}

	if v := os.Getenv("SERVINGS"); v != "" {
		servings, err := strconv.Atoi(v)
		if err != nil || servings <= 0 {
			return nil, fmt.Errorf("SERVINGS must be a positive integer, got %q", v)
		}
		cfg.Servings = servings
	}

	if v := os.Getenv("TELEGRAM_ALLOW_USER_ID"); v != "" {
		userID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOW_USER_ID must be an integer, got %q", v)
		}
		cfg.TelegramAllowUserID = userID
	}

	return cfg, nil
}

// HasLLM reports whether any LLM-backed feature can run.
func (c *Config) HasLLM() bool {
	return c.GeminiAPIKey != "" || c.GroqAPIKey != ""
}

// HasGhost reports whether the Ghost ingestion pipeline is configured.
func (c *Config) HasGhost() bool {
	return c.GhostURL != "" && c.GhostContentKey != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
