// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package supervisor runs the long-lived parts of the server under a suture v4
supervisor tree.

	RootSupervisor ("hackhunt")
	├── DataSupervisor ("data-layer")
	│   ├── SchedulerService        cron-driven ingestion runs
	│   └── StoreMaintenanceService periodic badger value log GC
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventListenerService    ingest.completed -> cache invalidation
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts its own children with exponential backoff, so a crashing
event listener never takes the HTTP server down with it. Supervisor events
(starts, failures, backoff) are logged through sutureslog onto the process
slog handler, which itself writes through zerolog.

Typical wiring in cmd/server:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewSchedulerService(scheduler))
	tree.AddMessagingService(services.NewEventListenerService("recommend-cache-invalidator", bus, recommender.HandleIngestCompleted))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

Service wrappers live in the services subpackage so that this package does
not import the components it supervises.
*/
package supervisor
