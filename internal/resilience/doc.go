// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package resilience holds the shared circuit breaker and backoff helpers
// used by every outbound HTTP client: the Kaggle source and the
// recommendation providers.
package resilience
