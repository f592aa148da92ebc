// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package events carries ingest.completed notifications over Watermill.
//
// The in-process transport is a gochannel pub/sub; the recommendation cache
// listens there. Setting events.nats_url also forwards every event to a NATS
// subject of the same name, behind a circuit breaker.
package events
