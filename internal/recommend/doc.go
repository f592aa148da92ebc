// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package recommend ranks hackathons for a user's skills and location.
//
// A request flows through three stages:
//
//  1. CandidateFilter narrows the corpus to a bounded pool, mixing local
//     events with a quota of online ones.
//  2. Engine asks the primary provider, then the secondary, for a ranking
//     and falls back to LocalScore when both fail. Rate-limited calls are
//     retried with exponential backoff; daily quota exhaustion skips
//     straight to the next tier.
//  3. Service caches generative results and drops them when an ingestion
//     run changes the corpus.
//
// Providers speak the OpenAI-compatible chat completions protocol through
// ChatClient. Replies are validated by ParseRecommendations: only titles from
// the candidate pool survive and scores are clamped to 0..100.
package recommend
