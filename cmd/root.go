package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/lukman83/widgetapps/config"
	"github.com/lukman83/widgetapps/internal/analytics"
	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/lukman83/widgetapps/internal/buttondown"
	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/lukman83/widgetapps/internal/httputil"
	"github.com/lukman83/widgetapps/internal/loan"
	"github.com/lukman83/widgetapps/internal/openaiapi"
	"github.com/lukman83/widgetapps/internal/quiz"
	"github.com/lukman83/widgetapps/internal/trip"
	"github.com/lukman83/widgetapps/internal/turnstile"
	"github.com/lukman83/widgetapps/internal/widgets"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "widgetapps",
	Short: "Widget Apps - MCP servers with HTML widgets for ChatGPT apps",
	Long:  "A Go-based MCP server exposing quiz, loan-calculator, and trip-planner tools backed by HTML widgets.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("apps", "", `Apps to expose: "all" or comma-separated names`)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("widget-dir", "", "Directory of widget HTML overrides (default: embedded)")
	rootCmd.PersistentFlags().String("analytics-dir", "", "Directory for analytics event files")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("apps"); v != "" {
		cfg.Apps = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("widget-dir"); v != "" {
		cfg.WidgetDir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("analytics-dir"); v != "" {
		cfg.AnalyticsDir = v
	}

	logger = newLogger(cfg.LogLevel)
}

func newLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"} // stdout belongs to the MCP transport
	l, err := zc.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// clients bundles everything built from config that apps and the HTTP
// surface share.
type clients struct {
	widgets    *widgets.Store
	events     *analytics.Logger
	rates      *fred.Client
	completer  *openaiapi.Client
	newsletter *buttondown.Client
	turnstile  *turnstile.Verifier
}

func buildClients() (*clients, error) {
	store, err := widgets.NewStore(cfg.WidgetDir, logger)
	if err != nil {
		return nil, fmt.Errorf("widget store: %w", err)
	}

	httpClient := httputil.NewHTTPClient(nil)
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	c := &clients{
		widgets:   store,
		events:    analytics.NewLogger(cfg.AnalyticsDir, logger),
		rates:     fred.NewClient(httpClient, cfg.FREDAPIKey, cfg.FREDBaseURL, cfg.RateCacheTTL, limiter),
		completer: openaiapi.NewClient(httpClient, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, limiter),
		turnstile: turnstile.NewVerifier(httpClient, cfg.TurnstileSecret, cfg.TurnstileBaseURL),
	}
	if cfg.ButtondownAPIKey != "" {
		c.newsletter = buttondown.NewClient(httpClient, cfg.ButtondownAPIKey, cfg.ButtondownBaseURL)
	}
	return c, nil
}

// initApps registers all apps and returns the ones selected by cfg.Apps.
func initApps(c *clients) ([]apps.App, error) {
	apps.Register(quiz.New(c.widgets))
	apps.Register(loan.New(c.rates, c.widgets))
	apps.Register(trip.New(c.completer, c.widgets))

	if cfg.Apps == "" || cfg.Apps == "all" {
		return apps.All(), nil
	}

	var selected []apps.App
	for _, name := range strings.Split(cfg.Apps, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		app, err := apps.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown app %q (have: %s)", name, strings.Join(apps.List(), ", "))
		}
		selected = append(selected, app)
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no apps selected")
	}
	return selected, nil
}
