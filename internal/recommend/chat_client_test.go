// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/config"
)

func chatCompletion(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func newTestChatClient(name, url string, markers ...string) *ChatClient {
	return NewChatClient(config.ProviderConfig{
		Name:         name,
		URL:          url,
		APIKey:       "test-key",
		Model:        "test-model",
		Timeout:      5 * time.Second,
		QuotaMarkers: markers,
	})
}

func TestChatClient_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("Expected model test-model, got %s", req.Model)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("Unexpected messages %+v", req.Messages)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Error("Expected json_object response format")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletion(validReply)))
	}))
	defer server.Close()

	c := newTestChatClient("groq", server.URL)
	got, err := c.Complete(context.Background(), Prompt{System: "s", User: "u", Temperature: 0.1, JSONMode: true})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != validReply {
		t.Errorf("Unexpected content %q", got)
	}
}

func TestChatClient_RateLimit(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		retryAfter     string
		wantDaily      bool
		wantRetryAfter time.Duration
	}{
		{
			name:      "daily quota",
			body:      `{"error":{"message":"Rate limit reached on tokens per day (TPD): Limit 100000, Used 99990","type":"tokens"}}`,
			wantDaily: true,
		},
		{
			name:           "per minute",
			body:           `{"error":{"message":"Rate limit reached on requests per minute (RPM)"}}`,
			retryAfter:     "3",
			wantRetryAfter: 3 * time.Second,
		},
		{
			name:      "array envelope",
			body:      `[{"error":{"message":"Quota exceeded for tokens per day (TPD)"}}]`,
			wantDaily: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newTestChatClient("groq", server.URL, "tokens per day (TPD)")
			_, err := c.Complete(context.Background(), Prompt{User: "u"})

			rl, ok := AsRateLimit(err)
			if !ok {
				t.Fatalf("Expected RateLimitError, got %v", err)
			}
			if rl.DailyQuota != tt.wantDaily {
				t.Errorf("DailyQuota = %v, want %v (detail %q)", rl.DailyQuota, tt.wantDaily, rl.Detail)
			}
			if rl.RetryAfter != tt.wantRetryAfter {
				t.Errorf("RetryAfter = %v, want %v", rl.RetryAfter, tt.wantRetryAfter)
			}
		})
	}
}

func TestChatClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable"}}`))
	}))
	defer server.Close()

	c := newTestChatClient("groq", server.URL)
	_, err := c.Complete(context.Background(), Prompt{User: "u"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if _, ok := AsRateLimit(err); ok {
		t.Error("5xx must not be a rate limit")
	}
	if !strings.Contains(err.Error(), "upstream unavailable") {
		t.Errorf("Expected detail in error, got %v", err)
	}
}

func TestChatClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := newTestChatClient("groq", server.URL)
	if _, err := c.Complete(context.Background(), Prompt{User: "u"}); err == nil {
		t.Error("Expected error for empty choices")
	}
}

// TestEngine_QuotaFallbackOverHTTP drives the whole chain through real HTTP:
// the primary reports daily quota exhaustion and the secondary answers.
func TestEngine_QuotaFallbackOverHTTP(t *testing.T) {
	var primaryCalls, secondaryCalls atomic.Int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		primaryCalls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached for model on tokens per day (TPD)"}}`))
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		secondaryCalls.Add(1)
		_, _ = w.Write([]byte(chatCompletion("```json\n" + validReply + "\n```")))
	}))
	defer secondary.Close()

	e := NewEngine(EngineConfig{BaseDelay: time.Millisecond},
		TierConfig{Provider: newTestChatClient("groq", primary.URL, "tokens per day (TPD)"), MaxRetries: 3},
		TierConfig{Provider: newTestChatClient("gemini", secondary.URL)},
	)

	res := e.Recommend(context.Background(), Request{Skills: []string{"AI"}, Candidates: engineCandidates()})

	if res.Tier != TierSecondary {
		t.Fatalf("Expected secondary tier, got %s", res.Tier)
	}
	if primaryCalls.Load() != 1 {
		t.Errorf("Expected a single primary call, got %d", primaryCalls.Load())
	}
	if secondaryCalls.Load() != 1 {
		t.Errorf("Expected a single secondary call, got %d", secondaryCalls.Load())
	}
	if res.Recommendations[0].HackathonTitle != "Global AI Hackathon" {
		t.Errorf("Unexpected recommendation %+v", res.Recommendations[0])
	}
}
