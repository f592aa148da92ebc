// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package services

import (
	"context"
	"fmt"
)

// Scheduler is the Start/Stop lifecycle of ingest.Scheduler.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error
}

// SchedulerService runs the ingestion scheduler under supervision.
//
// Stop waits for an in-flight ingestion run to return, so shutdown of the
// data layer can take as long as the slowest source's timeout.
type SchedulerService struct {
	scheduler Scheduler
	name      string
}

// NewSchedulerService wraps scheduler.
func NewSchedulerService(scheduler Scheduler) *SchedulerService {
	return &SchedulerService{
		scheduler: scheduler,
		name:      "ingest-scheduler",
	}
}

// Serve implements suture.Service.
func (s *SchedulerService) Serve(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("ingest scheduler start failed: %w", err)
	}

	<-ctx.Done()

	if err := s.scheduler.Stop(); err != nil {
		return fmt.Errorf("ingest scheduler stop failed: %w", err)
	}
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *SchedulerService) String() string {
	return s.name
}
