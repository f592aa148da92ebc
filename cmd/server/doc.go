// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

/*
Package main is the Hack-Hunt server.

It aggregates hackathon listings from MLH, Kaggle, Devpost and Devfolio into
one store, refreshes them on a cron schedule, and ranks them against a
user's skills through a provider fallback chain (primary LLM, secondary LLM,
local keyword scorer).

# Process layout

	RootSupervisor ("hackhunt")
	├── DataSupervisor ("data-layer")
	│   ├── ingest-scheduler    (INGEST_SCHEDULER_ENABLED, default on)
	│   └── store-maintenance   (badger backend only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── recommend-cache-invalidator
	└── APISupervisor ("api-layer")
	    └── http-server

Initialization order:

 1. Configuration (koanf: defaults, config.yaml, environment)
 2. Logging (zerolog)
 3. Document store (badger or duckdb) and upserter
 4. Source registry, orchestrator and event bus
 5. Recommendation cache and service
 6. HTTP router
 7. Supervisor tree

# Environment

Common variables:

	PORT=5000
	STORE_BACKEND=badger          # or duckdb
	STORE_PATH=data/hackathons
	GROQ_API_KEY=...              # primary ranking provider
	GEMINI_API_KEY=...            # secondary ranking provider
	KAGGLE_USERNAME=... KAGGLE_KEY=...
	CACHE_BACKEND=memory          # memory, redis or none
	REDIS_ADDR=localhost:6379
	NATS_URL=nats://localhost:4222
	INGEST_SCHEDULE="0 6,18 * * *"
	LOG_LEVEL=info LOG_FORMAT=json

Without provider keys the server still answers recommendation requests with
the local scorer.

# Signals

SIGINT and SIGTERM cancel the root context. The supervisor then stops the
HTTP server (draining in-flight requests), the scheduler (waiting for a
running ingestion) and the event listener, after which the store is closed.
*/
package main
