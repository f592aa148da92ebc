// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package services

import (
	"context"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/logging"
)

// GarbageCollector reclaims space in an embedded store. Satisfied by
// *store.BadgerStore.
type GarbageCollector interface {
	CollectGarbage(ctx context.Context) error
}

// DefaultMaintenanceInterval is how often the store is compacted when no
// interval is given.
const DefaultMaintenanceInterval = 30 * time.Minute

// StoreMaintenanceService runs value log GC on a fixed interval. Upserts
// rewrite every record on each ingestion run, which leaves stale values behind.
type StoreMaintenanceService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreMaintenanceService wraps gc. A non-positive interval uses
// DefaultMaintenanceInterval.
func NewStoreMaintenanceService(gc GarbageCollector, interval time.Duration) *StoreMaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &StoreMaintenanceService{
		gc:       gc,
		interval: interval,
		name:     "store-maintenance",
	}
}

// Serve implements suture.Service. GC errors are logged and retried on the
// next tick; they never restart the service.
func (s *StoreMaintenanceService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(s.name)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.gc.CollectGarbage(ctx); err != nil && ctx.Err() == nil {
				logger.Warn().Err(err).Msg("Store garbage collection failed")
				continue
			}
			logger.Debug().Dur("duration", time.Since(start)).Msg("Store garbage collection complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *StoreMaintenanceService) String() string {
	return s.name
}
