// Package buttondown subscribes emails to a Buttondown mailing list.
package buttondown

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lukman83/widgetapps/internal/httputil"
)

type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewClient(httpClient *http.Client, apiKey, baseURL string) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil)
	}
	return &Client{http: httpClient, apiKey: apiKey, baseURL: baseURL}
}

// SubscribeResult reports the outcome of one subscribe attempt.
type SubscribeResult struct {
	Email             string `json:"email"`
	AlreadySubscribed bool   `json:"already_subscribed,omitempty"`
}

type subscribeRequest struct {
	EmailAddress string   `json:"email_address"`
	Tags         []string `json:"tags,omitempty"`
}

// Subscribe adds an email to the list, tagged with tag if non-empty.
// An address that is already on the list is treated as success.
func (c *Client) Subscribe(ctx context.Context, email, tag string) (SubscribeResult, error) {
	if c.apiKey == "" {
		return SubscribeResult{}, fmt.Errorf("BUTTONDOWN_API_KEY is not configured")
	}
	if !strings.Contains(email, "@") {
		return SubscribeResult{}, fmt.Errorf("invalid email address")
	}

	payload := subscribeRequest{EmailAddress: email}
	if tag != "" {
		payload.Tags = []string{tag}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return SubscribeResult{}, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/subscribers", bytes.NewReader(body))
	if err != nil {
		return SubscribeResult{}, err
	}
	for k, v := range httputil.JSONHeaders() {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := httputil.DoWithRetry(c.http, httpReq, 1)
	if err != nil {
		return SubscribeResult{}, fmt.Errorf("buttondown request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := httputil.ReadBody(resp)
	if err != nil {
		return SubscribeResult{}, err
	}

	switch {
	case resp.StatusCode == http.StatusCreated:
		return SubscribeResult{Email: email}, nil
	case resp.StatusCode == http.StatusBadRequest &&
		strings.Contains(strings.ToLower(string(respBody)), "already subscribed"):
		return SubscribeResult{Email: email, AlreadySubscribed: true}, nil
	default:
		return SubscribeResult{}, fmt.Errorf("buttondown responded %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
