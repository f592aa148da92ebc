// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"sort"
	"strings"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

const (
	// DefaultMaxCandidates caps the pool handed to a provider.
	DefaultMaxCandidates = 30

	// DefaultOnlineQuota is how many online events join a local pool.
	DefaultOnlineQuota = 10
)

// CandidateFilter narrows the corpus before ranking. Zero fields use the
// package defaults.
type CandidateFilter struct {
	MaxCandidates int
	OnlineQuota   int
}

// Select applies the default CandidateFilter.
func Select(all []models.Hackathon, userLocation string, filters models.Filter) []models.Hackathon {
	return CandidateFilter{}.Select(all, userLocation, filters)
}

// Select is pure and deterministic; all is never modified.
//
//  1. Explicit filters are hard predicates.
//  2. With a user location and at least one local event, the pool is every
//     local event plus up to OnlineQuota online events that are not local.
//  3. A pool larger than MaxCandidates is stable-sorted by start date and
//     truncated.
func (c CandidateFilter) Select(all []models.Hackathon, userLocation string, filters models.Filter) []models.Hackathon {
	maxCandidates := c.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	onlineQuota := c.OnlineQuota
	if onlineQuota < 0 {
		onlineQuota = 0
	} else if onlineQuota == 0 {
		onlineQuota = DefaultOnlineQuota
	}

	filtered := make([]models.Hackathon, 0, len(all))
	for i := range all {
		if filters.Matches(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	pool := filtered
	if userLocation = strings.TrimSpace(userLocation); userLocation != "" {
		var local, online []models.Hackathon
		for i := range filtered {
			switch {
			case IsLocalMatch(filtered[i].Location, userLocation):
				local = append(local, filtered[i])
			case filtered[i].IsOnline() && len(online) < onlineQuota:
				online = append(online, filtered[i])
			}
		}
		if len(local) > 0 {
			pool = append(local, online...)
		}
	}

	if len(pool) > maxCandidates {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].StartDate.Before(pool[j].StartDate)
		})
		pool = pool[:maxCandidates]
	}
	return pool
}

// IsLocalMatch reports whether either location contains the other,
// case-insensitively. Empty locations never match.
func IsLocalMatch(eventLocation, userLocation string) bool {
	e := strings.ToLower(strings.TrimSpace(eventLocation))
	u := strings.ToLower(strings.TrimSpace(userLocation))
	if e == "" || u == "" {
		return false
	}
	return strings.Contains(e, u) || strings.Contains(u, e)
}
