// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"title": "HackMIT 2025", ...}],
//	  "metadata": {"timestamp": "2026-02-01T12:00:00Z", "count": 1}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {"code": "VALIDATION_ERROR", "message": "Skills is required"},
//	  "metadata": {"timestamp": "2026-02-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing and cache information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       int       `json:"count,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Codes used by the API:
//   - VALIDATION_ERROR: invalid request body or query parameter
//   - NOT_FOUND: hackathon does not exist
//   - UNKNOWN_SOURCE: ingest trigger named an unregistered source
//   - INGEST_IN_PROGRESS: an ingestion run is already active
//   - INTERNAL_ERROR: store failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
