// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

var codeFence = regexp.MustCompile("```(?:json)?\\s*")

// rawRecommendation accepts scores sent as numbers or numeric strings.
type rawRecommendation struct {
	HackathonTitle string      `json:"hackathonTitle"`
	MatchScore     interface{} `json:"matchScore"`
	Reason         string      `json:"reason"`
}

// ParseRecommendations extracts recommendations from a provider reply and
// validates them against the candidate titles. Accepted shapes:
//
//	{"recommendations": [...]}
//	[...]
//	{"hackathonTitle": ...}
//
// Items with unknown titles are dropped, scores are clamped to [0,100],
// repeated titles keep their first occurrence and at most limit items are
// returned. No surviving item is ErrUnparseable.
func ParseRecommendations(content string, candidates []models.Hackathon, limit int) ([]models.Recommendation, error) {
	raw, err := decodeReply(content)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]bool, len(candidates))
	for i := range candidates {
		titles[candidates[i].Title] = true
	}

	out := make([]models.Recommendation, 0, limit)
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		title := strings.TrimSpace(r.HackathonTitle)
		if !titles[title] || seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, models.Recommendation{
			HackathonTitle: title,
			MatchScore:     clampScore(r.MatchScore),
			Reason:         strings.TrimSpace(r.Reason),
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no recommendation matched a candidate", ErrUnparseable)
	}
	return out, nil
}

func decodeReply(content string) ([]rawRecommendation, error) {
	clean := strings.TrimSpace(codeFence.ReplaceAllString(content, ""))
	if clean == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrUnparseable)
	}

	data := []byte(clean)
	if bytes.HasPrefix(data, []byte("[")) {
		var list []rawRecommendation
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		return list, nil
	}

	var envelope struct {
		Recommendations []rawRecommendation `json:"recommendations"`
		HackathonTitle  string              `json:"hackathonTitle"`
		MatchScore      interface{}         `json:"matchScore"`
		Reason          string              `json:"reason"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if len(envelope.Recommendations) > 0 {
		return envelope.Recommendations, nil
	}
	if envelope.HackathonTitle != "" {
		return []rawRecommendation{{
			HackathonTitle: envelope.HackathonTitle,
			MatchScore:     envelope.MatchScore,
			Reason:         envelope.Reason,
		}}, nil
	}
	return nil, fmt.Errorf("%w: no recommendations key", ErrUnparseable)
}

func clampScore(v interface{}) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(n), "%")), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > 100:
		return 100
	default:
		return int(math.Round(f))
	}
}
