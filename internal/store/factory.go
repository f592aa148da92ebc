// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"fmt"

	"github.com/prem22k/Hack-Hunt/internal/config"
)

// Open creates the DocumentStore selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StoreConfig) (DocumentStore, error) {
	switch cfg.Backend {
	case "", "badger":
		return OpenBadger(cfg.Path, cfg.InMemory)
	case "duckdb":
		return OpenDuckDB(ctx, cfg.Path, cfg.InMemory)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
