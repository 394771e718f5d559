// Package turnstile verifies Cloudflare Turnstile challenge tokens.
package turnstile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lukman83/widgetapps/internal/httputil"
)

type Verifier struct {
	http    *http.Client
	secret  string
	baseURL string
}

func NewVerifier(httpClient *http.Client, secret, baseURL string) *Verifier {
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(nil)
	}
	return &Verifier{http: httpClient, secret: secret, baseURL: baseURL}
}

// Enabled reports whether a secret is configured. With no secret the caller
// should skip the challenge instead of failing every request.
func (v *Verifier) Enabled() bool { return v.secret != "" }

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks a client token. remoteIP may be empty.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return fmt.Errorf("missing turnstile token")
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		v.baseURL+"/turnstile/v0/siteverify", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httputil.DoWithRetry(v.http, httpReq, 1)
	if err != nil {
		return fmt.Errorf("turnstile request: %w", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return err
	}

	var parsed siteverifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode turnstile response: %w", err)
	}
	if !parsed.Success {
		if len(parsed.ErrorCodes) > 0 {
			return fmt.Errorf("turnstile rejected token: %s", strings.Join(parsed.ErrorCodes, ", "))
		}
		return fmt.Errorf("turnstile rejected token")
	}
	return nil
}
