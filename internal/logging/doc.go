// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package logging provides the zerolog-based global logger used across Hack-Hunt.
//
// Initialize once from main:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Then log with structured fields:
//
//	logging.Info().Str("source", "mlh").Int("fetched", n).Msg("Source fetched")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Provider rate limited")
//
// Adapters are provided for libraries with their own logging interfaces:
// NewSlogLogger for sutureslog and NewWatermillAdapter for the event bus.
//
// Always terminate chains with Msg or Send; an unterminated event is dropped.
package logging
