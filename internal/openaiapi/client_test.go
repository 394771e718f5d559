package openaiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	t.Run("forwards the prompt and clamps max_tokens", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req.Model)
			assert.Equal(t, maxTokensCap, req.MaxTokens) // 9000 clamped
			require.Len(t, req.Messages, 2)
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "plan it", req.Messages[1].Content)

			fmt.Fprint(w, `{"choices":[{"message":{"content":"Day 1: arrive"}}]}`)
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), "sk-test", srv.URL, "", nil)
		text, model, err := c.Completion(context.Background(), Request{
			System:    "travel planner",
			Prompt:    "plan it",
			MaxTokens: 9000,
		})
		require.NoError(t, err)
		assert.Equal(t, "Day 1: arrive", text)
		assert.Equal(t, "gpt-4o-mini", model)
	})

	t.Run("rejects models off the allow-list", func(t *testing.T) {
		c := NewClient(nil, "sk-test", "http://unused", "", nil)
		_, _, err := c.Completion(context.Background(), Request{Prompt: "hi", Model: "gpt-5-ultra"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed")
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"bad key"}}`)
		}))
		defer srv.Close()

		c := NewClient(srv.Client(), "sk-test", srv.URL, "", nil)
		_, _, err := c.Completion(context.Background(), Request{Prompt: "hi"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad key")
	})

	t.Run("missing key and empty prompt", func(t *testing.T) {
		c := NewClient(nil, "", "http://unused", "", nil)
		_, _, err := c.Completion(context.Background(), Request{Prompt: "hi"})
		assert.Error(t, err)

		c = NewClient(nil, "sk-test", "http://unused", "", nil)
		_, _, err = c.Completion(context.Background(), Request{})
		assert.Error(t, err)
	})
}
