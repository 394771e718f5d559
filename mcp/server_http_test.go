package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lukman83/widgetapps/internal/buttondown"
	"github.com/lukman83/widgetapps/internal/fred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBearerAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("granted"))
	})
	h := bearerAuth("topsecret", next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer topsecret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "granted", rec.Body.String())
	})
}

func TestHandleSubscribe(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"email_address":"a@b.co"}`))
	}))
	defer upstream.Close()

	h := &apiHandlers{
		newsletter: buttondown.NewClient(upstream.Client(), "key", upstream.URL),
		tag:        "widgetapps",
		logger:     zap.NewNop(),
	}

	t.Run("created", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe",
			strings.NewReader(`{"email":"a@b.co"}`))
		rec := httptest.NewRecorder()
		h.handleSubscribe(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "a@b.co")
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.handleSubscribe(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not configured", func(t *testing.T) {
		bare := &apiHandlers{logger: zap.NewNop()}
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe",
			strings.NewReader(`{"email":"a@b.co"}`))
		rec := httptest.NewRecorder()
		bare.handleSubscribe(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestHandleRates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"observations":[{"date":"2026-08-28","value":"6.25"}]}`))
	}))
	defer upstream.Close()

	h := &apiHandlers{
		rates:  fred.NewClient(upstream.Client(), "key", upstream.URL, time.Hour, nil),
		logger: zap.NewNop(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/rates/MORTGAGE30US", nil)
	req.SetPathValue("series", "MORTGAGE30US")
	rec := httptest.NewRecorder()
	h.handleRates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "6.25")
	assert.Contains(t, rec.Body.String(), "MORTGAGE30US")
}

func TestHandleDashboardBadRange(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dash?from=2026-09-02&to=2026-09-01", nil)
	handleDashboard(rec, req, t.TempDir())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDashboardEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dash", nil)
	handleDashboard(rec, req, t.TempDir())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
