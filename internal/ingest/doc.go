// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package ingest runs source adapters and persists their records.

The Orchestrator fans out one goroutine per registered source. Each goroutine
fetches, then upserts, under its own timeout and panic recovery; its outcome
lands in a SourceReport and never affects its siblings. Runs are serialized.

Three entry points share that pipeline:

  - RunAll: every registered source, blocking
  - RunSources: a named subset, blocking; unknown names fail before any work
  - TriggerNow: a background run that refuses to queue behind an active one

The Scheduler calls RunAll whenever its 5-field cron expression fires
(by default at minute 0 of hours 0 and 12).
*/
package ingest
