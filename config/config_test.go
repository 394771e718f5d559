package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "all", cfg.Apps)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "https://api.stlouisfed.org", cfg.FREDBaseURL)
	assert.Equal(t, 6*time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Empty(t, cfg.APIKey)
	assert.Empty(t, cfg.WidgetDir)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WIDGETAPPS_APPS", "quiz,trip")
	t.Setenv("PORT", "9090")
	t.Setenv("WIDGETAPPS_API_KEY", "sekrit")
	t.Setenv("FRED_API_KEY", "fred-key")
	t.Setenv("WIDGETAPPS_RATE_CACHE_TTL", "30m")
	t.Setenv("WIDGETAPPS_RATE_PER_SECOND", "5.5")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, "quiz,trip", cfg.Apps)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "sekrit", cfg.APIKey)
	assert.Equal(t, "fred-key", cfg.FREDAPIKey)
	assert.Equal(t, 30*time.Minute, cfg.RateCacheTTL)
	assert.Equal(t, 5.5, cfg.RatePerSecond)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
}

func TestLoadFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("WIDGETAPPS_RATE_CACHE_TTL", "soon")
	t.Setenv("WIDGETAPPS_RATE_BURST", "many")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, 6*time.Hour, cfg.RateCacheTTL)
	assert.Equal(t, 3, cfg.RateBurst)
}
