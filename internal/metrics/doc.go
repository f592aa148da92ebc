// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package metrics declares the Prometheus collectors for ingestion, storage,
// recommendation, caching, the event bus and the HTTP API.
//
// Collectors are registered with the default registry through promauto and
// exposed on /metrics by the api package. Callers should prefer the Record*
// helpers over touching the vectors directly so label sets stay consistent.
package metrics
