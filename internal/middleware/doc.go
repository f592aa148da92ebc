// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package middleware holds the HTTP middleware shared by the API router:
// request ID propagation into the logging context, structured access logs
// and Prometheus request instrumentation.
//
// The router applies them in this order:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog)
//	r.Use(chimiddleware.RealIP)
//	r.Use(chimiddleware.Recoverer)
//	r.Use(middleware.Metrics)
package middleware
