// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package models

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// IdentityStrategy selects how identity keys are derived.
type IdentityStrategy string

const (
	// IdentitySlug keys records by source and title slug.
	IdentitySlug IdentityStrategy = "slug"

	// IdentityDated keys records by source, title slug and start date.
	IdentityDated IdentityStrategy = "dated"
)

// Slug lowercases s and collapses every run of non-alphanumeric runes into a
// single hyphen.
//
//	Slug("  HackMIT  2025! ") == "hackmit-2025"
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// IdentityKey returns the deduplication key for h under the given strategy.
// Exactly one stored record may exist per key.
func IdentityKey(h *Hackathon, strategy IdentityStrategy) string {
	base := fmt.Sprintf("%s:%s", h.Source, Slug(h.Title))
	if strategy == IdentityDated {
		return base + ":" + h.StartDate.UTC().Format("2006-01-02")
	}
	return base
}

// idNamespace scopes record IDs so they never collide with other UUIDv5 users.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/prem22k/Hack-Hunt"))

// RecordID derives the store identifier for an identity key. The same key
// always yields the same ID, so re-ingestion keeps URLs stable.
func RecordID(identityKey string) string {
	return uuid.NewSHA1(idNamespace, []byte(identityKey)).String()
}
