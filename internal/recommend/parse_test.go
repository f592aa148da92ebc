// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"errors"
	"strings"
	"testing"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

func TestParseRecommendations_Shapes(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("HackMIT 2025", "Cambridge", models.ModeOffline, 1),
		hackathon("Global AI Hackathon", "Online", models.ModeOnline, 2),
	}

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "envelope",
			content: `{"recommendations":[{"hackathonTitle":"HackMIT 2025","matchScore":91,"reason":"Python"}]}`,
			want:    []string{"HackMIT 2025"},
		},
		{
			name:    "bare array",
			content: `[{"hackathonTitle":"Global AI Hackathon","matchScore":80,"reason":"ML"},{"hackathonTitle":"HackMIT 2025","matchScore":70,"reason":"x"}]`,
			want:    []string{"Global AI Hackathon", "HackMIT 2025"},
		},
		{
			name:    "single object",
			content: `{"hackathonTitle":"HackMIT 2025","matchScore":55,"reason":"close"}`,
			want:    []string{"HackMIT 2025"},
		},
		{
			name:    "code fenced",
			content: "```json\n{\"recommendations\":[{\"hackathonTitle\":\"HackMIT 2025\",\"matchScore\":60,\"reason\":\"r\"}]}\n```",
			want:    []string{"HackMIT 2025"},
		},
		{
			name:    "unknown titles dropped",
			content: `{"recommendations":[{"hackathonTitle":"Imaginary Hack","matchScore":99,"reason":"r"},{"hackathonTitle":"HackMIT 2025","matchScore":60,"reason":"r"}]}`,
			want:    []string{"HackMIT 2025"},
		},
		{
			name:    "duplicates keep first",
			content: `[{"hackathonTitle":"HackMIT 2025","matchScore":60,"reason":"a"},{"hackathonTitle":"HackMIT 2025","matchScore":90,"reason":"b"}]`,
			want:    []string{"HackMIT 2025"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecommendations(tt.content, candidates, 3)
			if err != nil {
				t.Fatalf("ParseRecommendations failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d items, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, title := range tt.want {
				if got[i].HackathonTitle != title {
					t.Errorf("Item %d: expected %q, got %q", i, title, got[i].HackathonTitle)
				}
			}
		})
	}
}

func TestParseRecommendations_ClampsScores(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("A", "", models.ModeOnline, 1),
		hackathon("B", "", models.ModeOnline, 2),
		hackathon("C", "", models.ModeOnline, 3),
		hackathon("D", "", models.ModeOnline, 4),
	}
	content := `[
		{"hackathonTitle":"A","matchScore":150,"reason":""},
		{"hackathonTitle":"B","matchScore":-4,"reason":""},
		{"hackathonTitle":"C","matchScore":"87%","reason":""},
		{"hackathonTitle":"D","matchScore":"high","reason":""}
	]`

	got, err := ParseRecommendations(content, candidates, 0)
	if err != nil {
		t.Fatalf("ParseRecommendations failed: %v", err)
	}
	want := []int{100, 0, 87, 0}
	for i, w := range want {
		if got[i].MatchScore != w {
			t.Errorf("%s: expected score %d, got %d", got[i].HackathonTitle, w, got[i].MatchScore)
		}
	}
}

func TestParseRecommendations_Limit(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("A", "", models.ModeOnline, 1),
		hackathon("B", "", models.ModeOnline, 2),
		hackathon("C", "", models.ModeOnline, 3),
	}
	content := `[{"hackathonTitle":"A","matchScore":1},{"hackathonTitle":"B","matchScore":2},{"hackathonTitle":"C","matchScore":3}]`

	got, err := ParseRecommendations(content, candidates, 2)
	if err != nil {
		t.Fatalf("ParseRecommendations failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected limit 2, got %d", len(got))
	}
}

func TestParseRecommendations_Unparseable(t *testing.T) {
	candidates := []models.Hackathon{hackathon("A", "", models.ModeOnline, 1)}

	for _, content := range []string{
		"",
		"Sure! Here are my picks.",
		`{"recommendations":[]}`,
		`{"picks":[{"hackathonTitle":"A"}]}`,
		`[{"hackathonTitle":"Not In Pool","matchScore":90}]`,
	} {
		_, err := ParseRecommendations(content, candidates, 3)
		if !errors.Is(err, ErrUnparseable) {
			t.Errorf("content %q: expected ErrUnparseable, got %v", content, err)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	long := strings.Repeat("é", 500)
	h := hackathon("HackMIT 2025", "Cambridge, MA", models.ModeOffline, 1, "python", "ml")
	h.Description = long

	p, err := BuildPrompt([]string{"Python", "React"}, "", []models.Hackathon{h}, 0, 0, 0)
	if err != nil {
		t.Fatalf("BuildPrompt failed: %v", err)
	}

	if p.System != systemPrompt {
		t.Errorf("Unexpected system prompt %q", p.System)
	}
	if !p.JSONMode {
		t.Error("Expected JSON mode")
	}
	if p.Temperature != defaultTemperature {
		t.Errorf("Expected default temperature, got %v", p.Temperature)
	}
	for _, want := range []string{
		"User Skills: Python, React",
		"User Location: Not specified",
		`"title": "HackMIT 2025"`,
		`"skills": "python, ml"`,
		"Select the top 3 hackathons",
	} {
		if !strings.Contains(p.User, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
	if strings.Contains(p.User, strings.Repeat("é", DefaultDescriptionLimit+1)) {
		t.Error("Description was not truncated")
	}
}
