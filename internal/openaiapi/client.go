// Package openaiapi is a narrow chat-completions passthrough: the widgets
// and the trip planner only ever need "one prompt in, one short text out".
package openaiapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lukman83/widgetapps/internal/httputil"
	"golang.org/x/time/rate"
)

// Models the proxy will forward to. Anything else is rejected before the
// request leaves the process.
var allowedModels = map[string]bool{
	"gpt-4o-mini": true,
	"gpt-4o":      true,
	"gpt-4.1-mini": true,
}

const maxTokensCap = 1024

type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	model   string
	limiter *rate.Limiter
}

// NewClient creates an OpenAI proxy client. limiter may be nil.
func NewClient(httpClient *http.Client, apiKey, baseURL, model string, limiter *rate.Limiter) *Client {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil)
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		limiter: limiter,
	}
}

// Request is one completion call. Zero values take the client defaults.
type Request struct {
	Model       string  `json:"model,omitempty"`
	System      string  `json:"system,omitempty"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Completion sends one chat-completion request and returns the first choice
// text and the model used.
func (c *Client) Completion(ctx context.Context, req Request) (string, string, error) {
	if c.apiKey == "" {
		return "", "", fmt.Errorf("OPENAI_API_KEY is not configured")
	}
	if req.Prompt == "" {
		return "", "", fmt.Errorf("prompt is required")
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	if !allowedModels[model] {
		return "", "", fmt.Errorf("model %q is not allowed", model)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 || maxTokens > maxTokensCap {
		maxTokens = maxTokensCap
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", "", fmt.Errorf("marshal request: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", "", err
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	for k, v := range httputil.BearerJSONHeaders(c.apiKey) {
		httpReq.Header[k] = v
	}

	resp, err := httputil.DoWithRetry(c.http, httpReq, 1)
	if err != nil {
		return "", "", fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := httputil.ReadBody(resp)
	if err != nil {
		return "", "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", "", fmt.Errorf("decode openai response: %w", err)
	}
	if parsed.Error != nil {
		return "", "", fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("openai responded %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", "", fmt.Errorf("openai returned no choices")
	}
	return parsed.Choices[0].Message.Content, model, nil
}

// Complete satisfies the trip planner's Completer interface.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, string, error) {
	return c.Completion(ctx, Request{System: system, Prompt: prompt, MaxTokens: maxTokens})
}
