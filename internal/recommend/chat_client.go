// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/resilience"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// apiErrorBody covers the OpenAI-style error envelope and the bare-array
// variant some compatible gateways return.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// ChatClient speaks the OpenAI-compatible chat completions protocol.
// Calls are paced by a token bucket and pass through a circuit breaker;
// rate-limit replies do not count against the breaker.
type ChatClient struct {
	name         string
	url          string
	apiKey       string
	model        string
	quotaMarkers []string

	client  *http.Client
	breaker *resilience.Breaker
	limiter *rate.Limiter
	now     func() time.Time
	logger  zerolog.Logger
}

// NewChatClient creates a client from provider configuration.
func NewChatClient(cfg config.ProviderConfig) *ChatClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	name := cfg.Name
	return &ChatClient{
		name:         name,
		url:          cfg.URL,
		apiKey:       cfg.APIKey,
		model:        cfg.Model,
		quotaMarkers: cfg.QuotaMarkers,
		client:       &http.Client{Timeout: timeout},
		breaker: resilience.NewBreakerWithSettings("provider-"+name, resilience.BreakerSettings{
			MinRequests: 5,
			IsSuccessful: func(err error) bool {
				if err == nil || errors.Is(err, context.Canceled) {
					return true
				}
				_, limited := AsRateLimit(err)
				return limited
			},
		}),
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
		logger:  logging.WithComponent("provider." + name),
	}
}

// Name implements Provider.
func (c *ChatClient) Name() string { return c.name }

// Complete implements Provider.
func (c *ChatClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%s: rate limiter: %w", c.name, err)
	}

	return resilience.Cast[string](c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, p)
	}))
}

func (c *ChatClient) do(ctx context.Context, p Prompt) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: p.System},
			{Role: "user", Content: p.User},
		},
		Temperature: p.Temperature,
	}
	if p.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordProviderRequest(c.name, 0, time.Since(start))
		return "", fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()
	metrics.RecordProviderRequest(c.name, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusTooManyRequests {
		detail := errorDetail(resilience.ReadBodyForError(resp.Body))
		return "", &RateLimitError{
			Status:     resp.StatusCode,
			Detail:     detail,
			DailyQuota: c.isDailyQuota(detail),
			RetryAfter: resilience.ParseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%s: status %d: %s", c.name, resp.StatusCode, errorDetail(resilience.ReadBodyForError(resp.Body)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: failed to decode response: %w", c.name, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: response has no choices", c.name)
	}
	return out.Choices[0].Message.Content, nil
}

func (c *ChatClient) isDailyQuota(detail string) bool {
	for _, marker := range c.quotaMarkers {
		if marker != "" && strings.Contains(detail, marker) {
			return true
		}
	}
	return false
}

// errorDetail extracts error.message from a JSON error body, falling back to
// the raw text.
func errorDetail(body string) string {
	var e apiErrorBody
	if err := json.Unmarshal([]byte(body), &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	var arr []apiErrorBody
	if err := json.Unmarshal([]byte(body), &arr); err == nil && len(arr) > 0 && arr[0].Error.Message != "" {
		return arr[0].Error.Message
	}
	return strings.TrimSpace(body)
}
