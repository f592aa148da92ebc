// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"testing"
	"time"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestParseSchedule_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"* * * *",
		"* * * * * *",
		"60 * * * *",
		"* 24 * * *",
		"* * 0 * *",
		"* * * 13 *",
		"* * * * 8",
		"*/0 * * * *",
		"5-1 * * * *",
		"a * * * *",
		"1,,2 * * * *",
	}
	for _, expr := range tests {
		expr := expr
		t.Run(expr, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseSchedule(expr); err == nil {
				t.Errorf("ParseSchedule(%q) succeeded, want error", expr)
			}
		})
	}
}

func TestSchedule_Next(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		expr  string
		after time.Time
		want  time.Time
	}{
		{"every twelve hours from morning", "0 */12 * * *", at(2025, 2, 1, 9, 30), at(2025, 2, 1, 12, 0)},
		{"every twelve hours rolls to next day", "0 */12 * * *", at(2025, 2, 1, 12, 0), at(2025, 2, 2, 0, 0)},
		{"strictly after", "30 9 * * *", at(2025, 2, 1, 9, 30), at(2025, 2, 2, 9, 30)},
		{"every fifteen minutes", "*/15 * * * *", at(2025, 2, 1, 9, 1), at(2025, 2, 1, 9, 15)},
		{"list", "0 8,20 * * *", at(2025, 2, 1, 9, 0), at(2025, 2, 1, 20, 0)},
		{"range with step", "0 9-17/4 * * *", at(2025, 2, 1, 14, 0), at(2025, 2, 1, 17, 0)},
		{"value with step", "10/20 * * * *", at(2025, 2, 1, 9, 31), at(2025, 2, 1, 9, 50)},
		{"month name", "0 0 1 mar *", at(2025, 2, 10, 0, 0), at(2025, 3, 1, 0, 0)},
		{"weekday name", "0 9 * * MON", at(2025, 2, 1, 0, 0), at(2025, 2, 3, 9, 0)},
		{"sunday as seven", "0 9 * * 7", at(2025, 2, 3, 0, 0), at(2025, 2, 9, 9, 0)},
		{"year rollover", "0 0 1 1 *", at(2025, 12, 31, 23, 59), at(2026, 1, 1, 0, 0)},
		{"leap day", "0 0 29 2 *", at(2025, 1, 1, 0, 0), at(2028, 2, 29, 0, 0)},
		// 2025-02-01 is a Saturday; the 15th comes after the Monday.
		{"dom or dow when both restricted", "0 0 15 * 1", at(2025, 2, 1, 0, 0), at(2025, 2, 3, 0, 0)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := ParseSchedule(tt.expr)
			if err != nil {
				t.Fatalf("ParseSchedule(%q) error = %v", tt.expr, err)
			}
			if got := s.Next(tt.after); !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.after, got, tt.want)
			}
		})
	}
}

func TestSchedule_NextNeverFires(t *testing.T) {
	t.Parallel()

	s, err := ParseSchedule("0 0 30 2 *")
	if err != nil {
		t.Fatalf("ParseSchedule() error = %v", err)
	}
	if got := s.Next(at(2025, 1, 1, 0, 0)); !got.IsZero() {
		t.Errorf("Next() = %v, want zero time", got)
	}
}

func TestSchedule_String(t *testing.T) {
	t.Parallel()

	s, err := ParseSchedule("  0   */12 * *  * ")
	if err != nil {
		t.Fatalf("ParseSchedule() error = %v", err)
	}
	if s.String() != "0 */12 * * *" {
		t.Errorf("String() = %q", s.String())
	}
}
