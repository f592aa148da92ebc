// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package api serves the HTTP surface with chi.
//
// Routes:
//
//	GET  /api/hackathons               list, filtered by skills, mode, isPaid, source, location
//	GET  /api/hackathons/{id}          one hackathon, 404 when unknown
//	POST /api/hackathons/recommend     ranked recommendations
//	POST /api/ingest?sources=mlh,...   start a background ingestion run (202, 400, 409)
//	GET  /api/ingest/status            last finished run
//	GET  /api/health/live              liveness
//	GET  /api/health/ready             readiness, 503 while the store is unreachable
//	GET  /metrics                      Prometheus
//
// Every JSON response uses the models.APIResponse envelope. Errors carry a
// machine-readable code such as VALIDATION_ERROR, NOT_FOUND, UNKNOWN_SOURCE,
// INGEST_IN_PROGRESS or INTERNAL_ERROR.
package api
