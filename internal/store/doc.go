// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package store persists canonical hackathon records.

A DocumentStore holds exactly one record per identity key. Two backends are
provided:

  - BadgerStore: embedded key-value store, the default
  - DuckDBStore: single SQL table with ON CONFLICT upserts

The Upserter sits in front of either backend. It derives identity keys,
collapses duplicates, stamps lastUpdated and splits the input into batches
that commit independently:

	up := store.NewUpserter(db, models.IdentitySlug, 450)
	res := up.Upsert(ctx, records, models.SourceMLH)
	// res.Created, res.Updated, res.Failed

Re-running the same input leaves every field unchanged except lastUpdated.
*/
package store
