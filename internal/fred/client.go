// Package fred fetches interest-rate series from the FRED API. Observations
// change weekly at most, so results are held in a small TTL cache and
// concurrent misses for the same series are collapsed into one upstream call.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lukman83/widgetapps/internal/httputil"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Series ids the apps care about.
const (
	SeriesMortgage30Y = "MORTGAGE30US"   // 30-year fixed mortgage average
	SeriesAuto48M     = "TERMCBAUTO48NS" // 48-month new car loan average
)

// Rate is the latest observation of a series.
type Rate struct {
	Series    string    `json:"series"`
	Percent   float64   `json:"percent"`
	Date      string    `json:"date"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale,omitempty"`
}

type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	ttl     time.Duration
	limiter *rate.Limiter
	now     func() time.Time

	mu    sync.RWMutex
	cache map[string]Rate
	group singleflight.Group
}

// NewClient creates a FRED client. limiter may be nil.
func NewClient(httpClient *http.Client, apiKey, baseURL string, ttl time.Duration, limiter *rate.Limiter) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil)
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: baseURL,
		ttl:     ttl,
		limiter: limiter,
		now:     time.Now,
		cache:   make(map[string]Rate),
	}
}

// CurrentRate returns the most recent non-missing observation for series.
// A cached value inside the TTL is returned as-is; if a refresh fails and a
// stale value exists, the stale value is returned with Stale set.
func (c *Client) CurrentRate(ctx context.Context, series string) (Rate, error) {
	c.mu.RLock()
	cached, ok := c.cache[series]
	c.mu.RUnlock()
	if ok && c.now().Sub(cached.FetchedAt) < c.ttl {
		return cached, nil
	}

	v, err, _ := c.group.Do(series, func() (any, error) {
		// Re-check: another caller may have filled the cache while we
		// waited on the flight group.
		c.mu.RLock()
		r, ok := c.cache[series]
		c.mu.RUnlock()
		if ok && c.now().Sub(r.FetchedAt) < c.ttl {
			return r, nil
		}

		fresh, err := c.fetch(ctx, series)
		if err != nil {
			if ok {
				r.Stale = true
				return r, nil
			}
			return Rate{}, err
		}
		c.mu.Lock()
		c.cache[series] = fresh
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return Rate{}, err
	}
	return v.(Rate), nil
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

func (c *Client) fetch(ctx context.Context, series string) (Rate, error) {
	if c.apiKey == "" {
		return Rate{}, fmt.Errorf("FRED_API_KEY is not configured")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Rate{}, err
		}
	}

	q := url.Values{}
	q.Set("series_id", series)
	q.Set("api_key", c.apiKey)
	q.Set("file_type", "json")
	q.Set("sort_order", "desc")
	q.Set("limit", "10")
	reqURL := c.baseURL + "/fred/series/observations?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return Rate{}, err
	}
	for k, v := range httputil.JSONHeaders() {
		httpReq.Header[k] = v
	}

	resp, err := httputil.DoWithRetry(c.http, httpReq, 2)
	if err != nil {
		return Rate{}, fmt.Errorf("fred request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rate{}, fmt.Errorf("fred responded %d", resp.StatusCode)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return Rate{}, err
	}

	var parsed observationsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Rate{}, fmt.Errorf("decode fred response: %w", err)
	}

	// FRED reports holes in a series as ".". Newest first, so the first
	// parseable value wins.
	for _, obs := range parsed.Observations {
		if obs.Value == "." || obs.Value == "" {
			continue
		}
		var pct float64
		if _, err := fmt.Sscanf(obs.Value, "%f", &pct); err != nil {
			continue
		}
		return Rate{
			Series:    series,
			Percent:   pct,
			Date:      obs.Date,
			FetchedAt: c.now(),
		}, nil
	}
	return Rate{}, fmt.Errorf("series %s has no usable observations", series)
}
