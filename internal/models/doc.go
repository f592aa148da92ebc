// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package models defines the data structures shared across Hack-Hunt.

Key Components:

  - Hackathon: the canonical record produced by every source adapter and
    persisted by the store
  - Source, Mode: enumerations for the producing adapter and attendance mode
  - IdentityKey, RecordID: deduplication key and the stable store identifier
    derived from it
  - Filter: query predicates shared by the list endpoint and the candidate filter
  - Recommendation: a ranked suggestion, never persisted
  - APIResponse: the envelope returned by every HTTP endpoint

Identity:

Records are deduplicated by an identity key built from the source and the
slugged title, optionally suffixed with the start date:

	key := models.IdentityKey(&h, models.IdentitySlug) // "mlh:hackmit-2025"
	id := models.RecordID(key)                         // stable UUIDv5

Thread Safety:

All types are plain values. Callers that share a Hackathon across goroutines
must copy it or synchronize access.
*/
package models
