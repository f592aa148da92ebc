// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package models

import (
	"fmt"
	"strings"
	"time"
)

// Source identifies the adapter that produced a hackathon.
type Source string

const (
	SourceMLH      Source = "mlh"
	SourceDevpost  Source = "devpost"
	SourceDevfolio Source = "devfolio"
	SourceKaggle   Source = "kaggle"
)

// AllSources lists every known source in registration order.
var AllSources = []Source{SourceMLH, SourceKaggle, SourceDevpost, SourceDevfolio}

// ParseSource converts a user-supplied name to a Source.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSources {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown source %q", name)
}

// String implements fmt.Stringer.
func (s Source) String() string {
	return string(s)
}

// Mode is the attendance mode of a hackathon.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	default:
		return false
	}
}

// Hackathon is the canonical record moved through ingestion and served to clients.
// Every adapter produces this shape regardless of origin.
//
// ID is assigned by the store on first write. LastUpdated is stamped by the
// upserter on every write; values set by adapters are ignored.
type Hackathon struct {
	ID              string    `json:"id,omitempty"`
	Title           string    `json:"title" validate:"required"`
	Organizer       string    `json:"organizer"`
	Description     string    `json:"description"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	Mode            Mode      `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	IsPaid          bool      `json:"isPaid"`
	Skills          []string  `json:"skills"`
	RegistrationURL string    `json:"registrationUrl"`
	Source          Source    `json:"source"`
	Location        string    `json:"location,omitempty"`
	Prize           string    `json:"prize,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// IsOnline reports whether the hackathon can be attended remotely.
// Hybrid events count as online only when their location says so.
func (h *Hackathon) IsOnline() bool {
	if h.Mode == ModeOnline {
		return true
	}
	return strings.Contains(strings.ToLower(h.Location), "online")
}

// HasAnySkill reports whether any of the hackathon skills contains any of the
// wanted skills, case-insensitively.
func (h *Hackathon) HasAnySkill(wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, s := range h.Skills {
			if strings.Contains(strings.ToLower(s), w) {
				return true
			}
		}
	}
	return false
}
