package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// General
	Apps     string // "all" or comma-separated app names
	LogLevel string // "debug", "info", "warn", "error"

	// HTTP server
	HTTPPort string
	APIKey   string

	// Widgets
	WidgetDir string // dev override; empty means embedded assets

	// Analytics
	AnalyticsDir string

	// Outbound rate limiting (shared by third-party API clients)
	RatePerSecond float64
	RateBurst     int

	// FRED
	FREDAPIKey   string
	FREDBaseURL  string
	RateCacheTTL time.Duration

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Buttondown
	ButtondownAPIKey  string
	ButtondownBaseURL string
	ButtondownTag     string

	// Turnstile
	TurnstileSecret  string
	TurnstileBaseURL string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Apps:              "all",
		LogLevel:          "info",
		HTTPPort:          "8080",
		AnalyticsDir:      "analytics",
		RatePerSecond:     2.0,
		RateBurst:         3,
		FREDBaseURL:       "https://api.stlouisfed.org",
		RateCacheTTL:      6 * time.Hour,
		OpenAIBaseURL:     "https://api.openai.com",
		OpenAIModel:       "gpt-4o-mini",
		ButtondownBaseURL: "https://api.buttondown.email",
		ButtondownTag:     "widgetapps",
		TurnstileBaseURL:  "https://challenges.cloudflare.com",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("WIDGETAPPS_APPS"); v != "" {
		c.Apps = v
	}
	if v := os.Getenv("WIDGETAPPS_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("WIDGETAPPS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("WIDGETAPPS_WIDGET_DIR"); v != "" {
		c.WidgetDir = v
	}
	if v := os.Getenv("WIDGETAPPS_ANALYTICS_DIR"); v != "" {
		c.AnalyticsDir = v
	}
	if v := os.Getenv("WIDGETAPPS_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("WIDGETAPPS_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FREDAPIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		c.FREDBaseURL = v
	}
	if v := os.Getenv("WIDGETAPPS_RATE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RateCacheTTL = d
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		c.OpenAIModel = v
	}
	if v := os.Getenv("BUTTONDOWN_API_KEY"); v != "" {
		c.ButtondownAPIKey = v
	}
	if v := os.Getenv("BUTTONDOWN_BASE_URL"); v != "" {
		c.ButtondownBaseURL = v
	}
	if v := os.Getenv("BUTTONDOWN_TAG"); v != "" {
		c.ButtondownTag = v
	}
	if v := os.Getenv("TURNSTILE_SECRET"); v != "" {
		c.TurnstileSecret = v
	}
	if v := os.Getenv("TURNSTILE_BASE_URL"); v != "" {
		c.TurnstileBaseURL = v
	}
}
