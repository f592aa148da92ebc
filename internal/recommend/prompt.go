// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

const (
	systemPrompt = "You are a helpful assistant that outputs JSON."

	// DefaultDescriptionLimit is the rune budget per candidate description.
	DefaultDescriptionLimit = 300

	defaultTemperature = 0.1
)

// candidateView is the projection of a candidate sent to a provider.
type candidateView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Mode        string `json:"mode"`
	Location    string `json:"location"`
}

// BuildPrompt renders the ranking request for the given user and candidates.
func BuildPrompt(skills []string, location string, candidates []models.Hackathon, descriptionLimit, topN int, temperature float64) (Prompt, error) {
	if descriptionLimit <= 0 {
		descriptionLimit = DefaultDescriptionLimit
	}
	if topN <= 0 {
		topN = DefaultMaxResults
	}

	views := make([]candidateView, 0, len(candidates))
	for i := range candidates {
		h := &candidates[i]
		views = append(views, candidateView{
			Title:       h.Title,
			Description: truncateRunes(h.Description, descriptionLimit),
			Skills:      strings.Join(h.Skills, ", "),
			Mode:        string(h.Mode),
			Location:    h.Location,
		})
	}
	list, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("marshal candidates: %w", err)
	}

	userLocation := strings.TrimSpace(location)
	if userLocation == "" {
		userLocation = "Not specified"
	}

	var b strings.Builder
	b.WriteString("You are an expert career advisor and technical recruiter.\n\n")
	fmt.Fprintf(&b, "User Skills: %s\n", strings.Join(skills, ", "))
	fmt.Fprintf(&b, "User Location: %s\n\n", userLocation)
	b.WriteString("Available Hackathons (Pre-filtered):\n")
	b.Write(list)
	b.WriteString("\n\nTask:\n")
	b.WriteString("1. Analyze the user's skills and location against the available hackathons.\n")
	fmt.Fprintf(&b, "2. Select the top %d hackathons that are the best match for this user.\n", topN)
	fmt.Fprintf(&b, "3. Rank them from best match (1) to lowest match (%d).\n", topN)
	b.WriteString("4. Provide a \"matchScore\" (0-100) and a specific \"reason\" explaining the connection between the user's skills and the hackathon's theme or requirements. Mention if it is a local match.\n\n")
	b.WriteString("Return ONLY a valid JSON object with a \"recommendations\" key containing an array:\n")
	b.WriteString(`{
  "recommendations": [
    {
      "hackathonTitle": "Exact Title From List",
      "matchScore": 95,
      "reason": "This hackathon focuses on AI/ML, which aligns perfectly with your Python and TensorFlow skills."
    }
  ]
}`)

	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return Prompt{
		System:      systemPrompt,
		User:        b.String(),
		Temperature: temperature,
		JSONMode:    true,
	}, nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
