// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package resilience

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		attempt int
		max     time.Duration
		want    time.Duration
	}{
		{0, 0, time.Second},
		{1, 0, 2 * time.Second},
		{3, 0, 8 * time.Second},
		{3, 5 * time.Second, 5 * time.Second},
		{-1, 0, time.Second},
	}
	for _, tt := range tests {
		if got := BackoffDelay(time.Second, tt.attempt, tt.max); got != tt.want {
			t.Errorf("BackoffDelay(1s, %d, %v) = %v, want %v", tt.attempt, tt.max, got, tt.want)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{" 10 ", 10 * time.Second},
		{"-2", 0},
		{"soon", 0},
		{now.Add(30 * time.Second).Format(time.RFC1123), 30 * time.Second},
		{now.Add(-time.Minute).Format(time.RFC1123), 0},
	}
	for _, tt := range tests {
		if got := ParseRetryAfter(tt.in, now); got != tt.want {
			t.Errorf("ParseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Sleep() = %v, want context.Canceled", err)
	}
}

func TestSleep_Elapses(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() = %v, want nil", err)
	}
}

func TestReadBodyForError(t *testing.T) {
	if got := ReadBodyForError(strings.NewReader("rate limited")); got != "rate limited" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 5000)
	if got := ReadBodyForError(strings.NewReader(long)); !strings.HasSuffix(got, "(truncated)") {
		t.Errorf("long body not marked truncated")
	}
}
