package mcp

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/lukman83/widgetapps/internal/analytics"
	"github.com/lukman83/widgetapps/internal/apps"
	"github.com/lukman83/widgetapps/internal/buttondown"
	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/lukman83/widgetapps/internal/openaiapi"
	"github.com/lukman83/widgetapps/internal/turnstile"
	"github.com/lukman83/widgetapps/internal/widgets"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// HTTPOptions carries everything the HTTP surface needs besides the apps.
type HTTPOptions struct {
	APIKey       string
	Widgets      *widgets.Store
	Events       *analytics.Logger
	AnalyticsDir string
	Rates        *fred.Client
	Completions  *openaiapi.Client
	Newsletter   *buttondown.Client
	Turnstile    *turnstile.Verifier
	Tag          string // Buttondown tag applied to new subscribers
	Logger       *zap.Logger
}

// ServeHTTP starts the MCP server over streamable HTTP plus the widget
// files, the proxy API, and the analytics dashboard, with optional Bearer
// token auth on /mcp and /dash.
func ServeHTTP(addr string, selected []apps.App, opts HTTPOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := newServer(selected, opts.Events)
	httpServer := server.NewStreamableHTTPServer(s,
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	)

	api := &apiHandlers{
		rates:      opts.Rates,
		completer:  opts.Completions,
		newsletter: opts.Newsletter,
		turnstile:  opts.Turnstile,
		tag:        opts.Tag,
		events:     opts.Events,
		logger:     logger,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	var mcpHandler http.Handler = httpServer
	if opts.APIKey != "" {
		mcpHandler = bearerAuth(opts.APIKey, httpServer)
	}
	mux.Handle("/mcp", mcpHandler)

	if opts.Widgets != nil {
		mux.Handle("GET /widgets/", opts.Widgets.Handler("/widgets/"))
	}

	mux.HandleFunc("POST /api/subscribe", api.handleSubscribe)
	mux.HandleFunc("GET /api/rates/{series}", api.handleRates)
	mux.HandleFunc("POST /api/complete", api.handleComplete)

	var dash http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handleDashboard(w, r, opts.AnalyticsDir)
	})
	if opts.APIKey != "" {
		dash = bearerAuth(opts.APIKey, dash)
	}
	mux.Handle("GET /dash", dash)

	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("widgetapps HTTP server listening", zap.String("addr", addr))
	return srv.ListenAndServe()
}

func bearerAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp"`)
			http.Error(w, `{"error":"missing Authorization header"}`, http.StatusUnauthorized)
			return
		}
		token, found := strings.CutPrefix(auth, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mcp", error="invalid_token"`)
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
