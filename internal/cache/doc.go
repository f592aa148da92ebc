// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package cache holds the recommendation result cache.
//
// Store is the backend-neutral contract. Memory keeps entries in a generic
// TTL-aware LRU inside the process; Redis shares entries across replicas and
// clears its keyspace with SCAN and DEL; Noop disables caching.
package cache
