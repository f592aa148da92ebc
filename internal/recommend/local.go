// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// LocalScore ranks candidates by skill overlap without any provider.
//
// A candidate skill matches when it contains some user skill,
// case-insensitively, so "node" matches "Node.js" but "blockchain" does not
// match "AI". The score is min(matches*20+10, 95), plus 15 capped at
// 99 when a user skill appears in the title. Ties keep candidate order.
func LocalScore(skills []string, candidates []models.Hackathon, limit int) []models.Recommendation {
	wanted := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			wanted = append(wanted, s)
		}
	}

	all := make([]models.Recommendation, 0, len(candidates))
	for i := range candidates {
		h := &candidates[i]
		matched := matchedSkills(h.Skills, wanted)

		score := len(matched)*20 + 10
		if score > 95 {
			score = 95
		}
		title := strings.ToLower(h.Title)
		for _, w := range wanted {
			if strings.Contains(title, w) {
				score += 15
				if score > 99 {
					score = 99
				}
				break
			}
		}

		all = append(all, models.Recommendation{
			HackathonTitle: h.Title,
			MatchScore:     score,
			Reason:         localReason(matched),
		})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].MatchScore > all[j].MatchScore
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// matchedSkills returns the candidate skills containing any wanted skill.
// wanted must already be lowercased.
func matchedSkills(candidate, wanted []string) []string {
	var out []string
	for _, s := range candidate {
		ls := strings.ToLower(strings.TrimSpace(s))
		if ls == "" {
			continue
		}
		for _, w := range wanted {
			if strings.Contains(ls, w) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func localReason(matched []string) string {
	if len(matched) == 0 {
		return "Recommended based on general popularity and upcoming dates."
	}
	return fmt.Sprintf("Matches your skills: %s.", strings.Join(matched, ", "))
}
