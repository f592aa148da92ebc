// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"fmt"
	"testing"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

var baseDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

func hackathon(title, location string, mode models.Mode, startOffsetDays int, skills ...string) models.Hackathon {
	start := baseDate.AddDate(0, 0, startOffsetDays)
	return models.Hackathon{
		Title:     title,
		Location:  location,
		Mode:      mode,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Skills:    skills,
		Source:    models.SourceDevpost,
	}
}

func titles(hs []models.Hackathon) []string {
	out := make([]string, len(hs))
	for i := range hs {
		out[i] = hs[i].Title
	}
	return out
}

func TestSelect_CapsPoolAtMaxCandidates(t *testing.T) {
	var all []models.Hackathon
	// Reverse start order so truncation must sort.
	for i := 0; i < 45; i++ {
		all = append(all, hackathon(fmt.Sprintf("Event %02d", i), "Online", models.ModeOnline, 45-i))
	}

	got := Select(all, "", models.Filter{})
	if len(got) != DefaultMaxCandidates {
		t.Fatalf("Expected %d candidates, got %d", DefaultMaxCandidates, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartDate.Before(got[i-1].StartDate) {
			t.Fatalf("Candidates not sorted by start date at %d", i)
		}
	}
	if got[0].Title != "Event 44" {
		t.Errorf("Expected earliest event first, got %s", got[0].Title)
	}
}

func TestSelect_LocalUnionOnlineQuota(t *testing.T) {
	var all []models.Hackathon
	for i := 0; i < 5; i++ {
		all = append(all, hackathon(fmt.Sprintf("Hyderabad %d", i), "Hyderabad, India", models.ModeOffline, i))
	}
	for i := 0; i < 12; i++ {
		all = append(all, hackathon(fmt.Sprintf("Remote %d", i), "Online", models.ModeOnline, i))
	}
	all = append(all, hackathon("Berlin Jam", "Berlin, Germany", models.ModeOffline, 3))

	got := Select(all, "hyderabad", models.Filter{})
	if len(got) != 15 {
		t.Fatalf("Expected 5 local + 10 online = 15, got %d: %v", len(got), titles(got))
	}
	local := 0
	for i := range got {
		if got[i].Title == "Berlin Jam" {
			t.Error("Non-local offline event must not join the pool")
		}
		if IsLocalMatch(got[i].Location, "hyderabad") {
			local++
		}
	}
	if local != 5 {
		t.Errorf("Expected all 5 local events, got %d", local)
	}
}

func TestSelect_NoLocalMatchKeepsFilteredPool(t *testing.T) {
	all := []models.Hackathon{
		hackathon("A", "Berlin", models.ModeOffline, 1),
		hackathon("B", "Online", models.ModeOnline, 2),
	}

	got := Select(all, "Tokyo", models.Filter{})
	if len(got) != 2 {
		t.Errorf("Expected whole pool without local matches, got %v", titles(got))
	}
}

func TestSelect_FiltersAreHardPredicates(t *testing.T) {
	paid := hackathon("Paid", "Online", models.ModeOnline, 1, "python")
	paid.IsPaid = true
	all := []models.Hackathon{
		paid,
		hackathon("Free Python", "Online", models.ModeOnline, 2, "Python"),
		hackathon("Free Go", "Online", models.ModeOnline, 3, "go"),
	}

	got := Select(all, "", models.Filter{IsPaid: models.BoolPtr(false), Skills: []string{"python"}})
	if len(got) != 1 || got[0].Title != "Free Python" {
		t.Errorf("Expected only 'Free Python', got %v", titles(got))
	}
}

func TestSelect_DoesNotModifyInput(t *testing.T) {
	all := []models.Hackathon{
		hackathon("Late", "Online", models.ModeOnline, 9),
		hackathon("Early", "Online", models.ModeOnline, 1),
		hackathon("Mid", "Online", models.ModeOnline, 5),
	}

	_ = CandidateFilter{MaxCandidates: 2}.Select(all, "", models.Filter{})
	if got := titles(all); got[0] != "Late" || got[1] != "Early" || got[2] != "Mid" {
		t.Errorf("Input reordered: %v", got)
	}
}

func TestSelect_NegativeQuotaExcludesOnline(t *testing.T) {
	all := []models.Hackathon{
		hackathon("Local", "Pune", models.ModeOffline, 1),
		hackathon("Remote", "Online", models.ModeOnline, 2),
	}

	got := CandidateFilter{OnlineQuota: -1}.Select(all, "Pune", models.Filter{})
	if len(got) != 1 || got[0].Title != "Local" {
		t.Errorf("Expected only the local event, got %v", titles(got))
	}
}

func TestIsLocalMatch(t *testing.T) {
	tests := []struct {
		event, user string
		want        bool
	}{
		{"Hyderabad, India", "hyderabad", true},
		{"Boston", "Boston, MA", true},
		{"Berlin", "Munich", false},
		{"", "Boston", false},
		{"Boston", "  ", false},
	}

	for _, tt := range tests {
		if got := IsLocalMatch(tt.event, tt.user); got != tt.want {
			t.Errorf("IsLocalMatch(%q, %q) = %v, want %v", tt.event, tt.user, got, tt.want)
		}
	}
}
