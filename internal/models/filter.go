// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package models

import "strings"

// Filter holds the optional query predicates shared by the list endpoint and
// the candidate filter. Nil pointers and empty values mean "no constraint".
type Filter struct {
	Mode     Mode     `json:"mode,omitempty" validate:"omitempty,oneof=online offline hybrid"`
	IsPaid   *bool    `json:"isPaid,omitempty"`
	Source   Source   `json:"source,omitempty"`
	Skills   []string `json:"skills,omitempty"`
	Location string   `json:"location,omitempty"`
}

// Empty reports whether f constrains nothing.
func (f *Filter) Empty() bool {
	return f == nil || (f.Mode == "" && f.IsPaid == nil && f.Source == "" && len(f.Skills) == 0 && f.Location == "")
}

// Matches applies every set predicate to h. Skills match if any wanted skill
// is contained in any hackathon skill; location is a case-insensitive substring.
func (f *Filter) Matches(h *Hackathon) bool {
	if f == nil {
		return true
	}
	if f.Mode != "" && h.Mode != f.Mode {
		return false
	}
	if f.IsPaid != nil && h.IsPaid != *f.IsPaid {
		return false
	}
	if f.Source != "" && h.Source != f.Source {
		return false
	}
	if len(f.Skills) > 0 && !h.HasAnySkill(f.Skills) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(h.Location), strings.ToLower(strings.TrimSpace(f.Location))) {
		return false
	}
	return true
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
