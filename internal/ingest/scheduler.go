// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/logging"
)

// Runner is the part of the Orchestrator the scheduler drives.
type Runner interface {
	RunAll(ctx context.Context) *Report
}

// Scheduler runs a full ingestion whenever its cron schedule fires.
// Start and Stop are idempotent.
type Scheduler struct {
	runner       Runner
	schedule     *Schedule
	runOnStartup bool
	now          func() time.Time
	logger       zerolog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler parses expr and returns a stopped scheduler.
func NewScheduler(runner Runner, expr string, runOnStartup bool) (*Scheduler, error) {
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		runner:       runner,
		schedule:     schedule,
		runOnStartup: runOnStartup,
		now:          time.Now,
		logger:       logging.WithComponent("ingest-scheduler"),
	}, nil
}

// Start launches the scheduling loop. Calling Start on a running scheduler
// is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	s.logger.Info().
		Str("schedule", s.schedule.String()).
		Bool("run_on_startup", s.runOnStartup).
		Time("next_run", s.schedule.Next(s.now())).
		Msg("Starting ingestion scheduler")

	go s.loop(ctx, s.stopCh, s.doneCh)
	return nil
}

// Stop ends the loop and waits for an in-flight run to return. Calling Stop
// on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	close(stopCh)
	<-doneCh
	s.logger.Info().Msg("Ingestion scheduler stopped")
	return nil
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns when the schedule next fires after now.
func (s *Scheduler) NextRun() time.Time {
	return s.schedule.Next(s.now())
}

func (s *Scheduler) loop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	// A stop must also cancel a run in progress.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	if s.runOnStartup {
		s.runner.RunAll(ctx)
	}

	for {
		next := s.schedule.Next(s.now())
		if next.IsZero() {
			s.logger.Error().Str("schedule", s.schedule.String()).Msg("Schedule never fires, scheduler idle")
			<-ctx.Done()
			return
		}

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.logger.Info().Time("scheduled_for", next).Msg("Scheduled ingestion triggered")
			s.runner.RunAll(ctx)
		}
	}
}
