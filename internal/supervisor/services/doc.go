// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

// Package services adapts the server's long-running components to
// suture.Service.
//
// Each wrapper depends on a narrow interface rather than the concrete type,
// so the supervisor never imports the api, ingest or events packages and the
// wrappers can be tested with fakes:
//
//	HTTPServerService        ListenAndServe / Shutdown
//	SchedulerService         Start / Stop (ingest.Scheduler)
//	EventListenerService     Listen (events.Bus)
//	StoreMaintenanceService  CollectGarbage (store.BadgerStore)
//
// Every wrapper implements fmt.Stringer; suture uses the name in its logs.
package services
