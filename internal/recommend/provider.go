// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnparseable marks a provider reply that yielded no usable items.
var ErrUnparseable = errors.New("unparseable provider response")

// Prompt is one chat completion request.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	JSONMode    bool
}

// Provider is a generative ranking backend. Complete returns the raw
// assistant message. A rate-limited call returns *RateLimitError.
type Provider interface {
	Name() string
	Complete(ctx context.Context, p Prompt) (string, error)
}

// RateLimitError is a 429 from a provider. DailyQuota is set when the detail
// names a daily allowance; retrying the same provider is then pointless.
type RateLimitError struct {
	Status     int
	Detail     string
	DailyQuota bool
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.DailyQuota {
		return fmt.Sprintf("daily quota exhausted (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("rate limited (status %d): %s", e.Status, e.Detail)
}

// AsRateLimit unwraps err to a *RateLimitError.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
