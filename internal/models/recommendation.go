// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package models

// Recommendation is one ranked suggestion. It is created per request and
// never persisted.
type Recommendation struct {
	HackathonTitle string `json:"hackathonTitle"`
	MatchScore     int    `json:"matchScore"`
	Reason         string `json:"reason"`
}
