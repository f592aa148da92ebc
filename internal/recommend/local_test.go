// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"testing"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

func TestLocalScore(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("Design Sprint", "", models.ModeOnline, 1, "figma"),
		hackathon("Python Data Jam", "", models.ModeOnline, 2, "Python", "Pandas"),
		hackathon("Web Week", "", models.ModeOnline, 3, "React", "Node.js", "python", "CSS", "HTML"),
		hackathon("AI Summit", "", models.ModeOnline, 4, "machine learning"),
	}

	got := LocalScore([]string{"python", "react", "html", "css", "node"}, candidates, 0)
	if len(got) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(got))
	}

	// Web Week: 5 matches -> min(110, 95).
	if got[0].HackathonTitle != "Web Week" || got[0].MatchScore != 95 {
		t.Errorf("Expected Web Week at 95 first, got %+v", got[0])
	}
	// Python Data Jam: 1 match (30) + title bonus 15.
	if got[1].HackathonTitle != "Python Data Jam" || got[1].MatchScore != 45 {
		t.Errorf("Expected Python Data Jam at 45, got %+v", got[1])
	}
	if got[1].Reason != "Matches your skills: Python." {
		t.Errorf("Unexpected reason %q", got[1].Reason)
	}
	// Zero-match ties keep candidate order.
	if got[2].HackathonTitle != "Design Sprint" || got[3].HackathonTitle != "AI Summit" {
		t.Errorf("Expected stable order for ties, got %s, %s", got[2].HackathonTitle, got[3].HackathonTitle)
	}
	if got[2].MatchScore != 10 {
		t.Errorf("Expected base score 10, got %d", got[2].MatchScore)
	}
	if got[2].Reason != "Recommended based on general popularity and upcoming dates." {
		t.Errorf("Unexpected fallback reason %q", got[2].Reason)
	}
}

func TestLocalScore_TitleBonusCap(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("Go Gophers Go", "", models.ModeOnline, 1, "go", "golang", "gopher", "goroutines", "gofmt"),
	}

	got := LocalScore([]string{"go"}, candidates, 3)
	if got[0].MatchScore != 99 {
		t.Errorf("Expected 95+15 capped at 99, got %d", got[0].MatchScore)
	}
}

func TestLocalScore_Limit(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("A", "", models.ModeOnline, 1),
		hackathon("B", "", models.ModeOnline, 2),
		hackathon("C", "", models.ModeOnline, 3),
		hackathon("D", "", models.ModeOnline, 4),
	}

	if got := LocalScore(nil, candidates, DefaultMaxResults); len(got) != DefaultMaxResults {
		t.Errorf("Expected %d results, got %d", DefaultMaxResults, len(got))
	}
}

func TestLocalScore_ShortCandidateSkillsDoNotMatchLongerUserSkills(t *testing.T) {
	tests := []struct {
		name      string
		skills    []string
		candidate models.Hackathon
		wantScore int
	}{
		{
			name:      "ai inside blockchain",
			skills:    []string{"blockchain"},
			candidate: hackathon("Vision Cup", "", models.ModeOnline, 1, "AI"),
			wantScore: 10,
		},
		{
			name:      "go inside mongodb",
			skills:    []string{"mongodb"},
			candidate: hackathon("Gopher Fest", "", models.ModeOnline, 1, "Go"),
			wantScore: 10,
		},
		{
			name:      "user skill inside candidate skill",
			skills:    []string{"node"},
			candidate: hackathon("Backend Bash", "", models.ModeOnline, 1, "Node.js"),
			wantScore: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LocalScore(tt.skills, []models.Hackathon{tt.candidate}, 0)
			if got[0].MatchScore != tt.wantScore {
				t.Errorf("Expected score %d, got %d (%s)", tt.wantScore, got[0].MatchScore, got[0].Reason)
			}
		})
	}
}

func TestLocalScore_ExactSkillOutranksIncidentalSubstrings(t *testing.T) {
	candidates := []models.Hackathon{
		hackathon("Data Stack Jam", "", models.ModeOnline, 1, "MongoDB", "Django"),
		hackathon("Gopher Fest", "", models.ModeOnline, 2, "Go"),
	}

	got := LocalScore([]string{"golang"}, candidates, 0)

	if got[0].MatchScore != 10 || got[1].MatchScore != 10 {
		t.Errorf("Expected no matches for golang, got %+v", got)
	}

	got = LocalScore([]string{"blockchain"}, []models.Hackathon{
		hackathon("HackMIT", "", models.ModeOnline, 1, "AI", "Web"),
		hackathon("Ledger Lab", "", models.ModeOnline, 2, "Blockchain"),
	}, 0)
	if got[0].HackathonTitle != "Ledger Lab" {
		t.Errorf("Expected Ledger Lab first, got %s", got[0].HackathonTitle)
	}
	if got[1].Reason != "Recommended based on general popularity and upcoming dates." {
		t.Errorf("Expected fallback reason for HackMIT, got %q", got[1].Reason)
	}
}
