package mcp

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/lukman83/widgetapps/internal/analytics"
	"github.com/lukman83/widgetapps/internal/buttondown"
	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/lukman83/widgetapps/internal/openaiapi"
	"github.com/lukman83/widgetapps/internal/turnstile"
	"go.uber.org/zap"
)

type apiHandlers struct {
	rates      *fred.Client
	completer  *openaiapi.Client
	newsletter *buttondown.Client
	turnstile  *turnstile.Verifier
	tag        string
	events     *analytics.Logger
	logger     *zap.Logger
}

func (h *apiHandlers) record(name string, start time.Time, ok bool) {
	if h.events == nil {
		return
	}
	h.events.Record(analytics.Event{
		Kind:       "api",
		Tool:       name,
		DurationMS: time.Since(start).Milliseconds(),
		OK:         ok,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type subscribeRequest struct {
	Email          string `json:"email"`
	TurnstileToken string `json:"turnstile_token"`
}

func (h *apiHandlers) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ok := false
	defer func() { h.record("subscribe", start, ok) }()

	if h.newsletter == nil {
		writeError(w, http.StatusServiceUnavailable, "newsletter signup is not configured")
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if h.turnstile != nil && h.turnstile.Enabled() {
		ip, _, _ := net.SplitHostPort(r.RemoteAddr)
		if err := h.turnstile.Verify(r.Context(), req.TurnstileToken, ip); err != nil {
			h.logger.Warn("turnstile rejected subscribe", zap.Error(err))
			writeError(w, http.StatusForbidden, "captcha verification failed")
			return
		}
	}

	res, err := h.newsletter.Subscribe(r.Context(), req.Email, h.tag)
	if err != nil {
		h.logger.Warn("subscribe failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	ok = true
	writeJSON(w, http.StatusOK, res)
}

func (h *apiHandlers) handleRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ok := false
	defer func() { h.record("rates", start, ok) }()

	if h.rates == nil {
		writeError(w, http.StatusServiceUnavailable, "rate lookups are not configured")
		return
	}

	series := r.PathValue("series")
	rate, err := h.rates.CurrentRate(r.Context(), series)
	if err != nil {
		h.logger.Warn("rate lookup failed", zap.String("series", series), zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	ok = true
	writeJSON(w, http.StatusOK, rate)
}

func (h *apiHandlers) handleComplete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ok := false
	defer func() { h.record("complete", start, ok) }()

	if h.completer == nil {
		writeError(w, http.StatusServiceUnavailable, "completions are not configured")
		return
	}

	var req openaiapi.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	text, model, err := h.completer.Completion(r.Context(), req)
	if err != nil {
		h.logger.Warn("completion failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	ok = true
	writeJSON(w, http.StatusOK, map[string]string{"text": text, "model": model})
}

// handleDashboard renders the analytics dashboard for ?from=...&to=...
// (YYYY-MM-DD, default the last 7 days).
func handleDashboard(w http.ResponseWriter, r *http.Request, dir string) {
	to := r.URL.Query().Get("to")
	from := r.URL.Query().Get("from")
	now := time.Now()
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = now.AddDate(0, 0, -6).Format("2006-01-02")
	}

	rep, err := analytics.Aggregate(dir, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := analytics.RenderDashboard(w, rep); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
