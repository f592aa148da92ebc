// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"net/url"
	"strings"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// DefaultLocation is used when a listing names no location.
const DefaultLocation = "Online"

// CollapseSpace trims s and folds every whitespace run into one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LocationOrDefault returns the cleaned location or DefaultLocation.
func LocationOrDefault(location string) string {
	if loc := CollapseSpace(location); loc != "" {
		return loc
	}
	return DefaultLocation
}

// InferMode derives the attendance mode from free-text location.
func InferMode(location string) models.Mode {
	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, "hybrid"):
		return models.ModeHybrid
	case strings.Contains(loc, "online"), strings.Contains(loc, "virtual"):
		return models.ModeOnline
	default:
		return models.ModeOffline
	}
}

// AbsoluteURL resolves ref against base. Protocol-relative references get
// https. Unparseable references are returned unchanged.
func AbsoluteURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// Finalize applies the shared invariants to a record built by an adapter.
// It reports false when the record must be dropped.
func Finalize(h *models.Hackathon) bool {
	h.Title = CollapseSpace(h.Title)
	h.RegistrationURL = strings.TrimSpace(h.RegistrationURL)
	if h.Title == "" || h.RegistrationURL == "" {
		return false
	}
	if h.Skills == nil {
		h.Skills = []string{}
	}
	if h.EndDate.Before(h.StartDate) {
		h.EndDate = h.StartDate
	}
	if h.Mode == "" {
		h.Mode = InferMode(h.Location)
	}
	return true
}
