// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/sources"
	"github.com/prem22k/Hack-Hunt/internal/store"
)

var (
	// ErrUnknownSource is returned when a run names an unregistered source.
	ErrUnknownSource = errors.New("unknown source")

	// ErrRunInProgress is returned by TriggerNow while another run is active.
	ErrRunInProgress = errors.New("ingestion run already in progress")
)

// DefaultSourceTimeout bounds one source's fetch and upsert.
const DefaultSourceTimeout = 3 * time.Minute

// Upserter is the write side of a run.
type Upserter interface {
	Upsert(ctx context.Context, events []models.Hackathon, source models.Source) store.UpsertResult
}

// Orchestrator runs registered sources and upserts their records.
//
// Each source runs in its own goroutine with its own timeout and panic
// recovery, so one failing source never affects the others. Whole runs are
// serialized: RunAll and RunSources wait for an active run, TriggerNow
// refuses with ErrRunInProgress.
type Orchestrator struct {
	registry      *sources.Registry
	upserter      Upserter
	sourceTimeout time.Duration
	logger        zerolog.Logger

	runMu sync.Mutex // held for the duration of a run

	mu             sync.RWMutex
	lastReport     *Report
	onRunCompleted func(ctx context.Context, r *Report)

	// background carries TriggerNow runs; Close cancels it.
	background context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewOrchestrator creates an orchestrator over the given registry.
func NewOrchestrator(registry *sources.Registry, upserter Upserter, sourceTimeout time.Duration) *Orchestrator {
	if sourceTimeout <= 0 {
		sourceTimeout = DefaultSourceTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		registry:      registry,
		upserter:      upserter,
		sourceTimeout: sourceTimeout,
		logger:        logging.WithComponent("ingest"),
		background:    ctx,
		cancel:        cancel,
	}
}

// SetOnRunCompleted sets the callback invoked after every finished run.
func (o *Orchestrator) SetOnRunCompleted(callback func(ctx context.Context, r *Report)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onRunCompleted = callback
}

// LastReport returns the most recent finished run, or nil.
func (o *Orchestrator) LastReport() *Report {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastReport
}

// Sources lists the registered source names.
func (o *Orchestrator) Sources() []models.Source {
	return o.registry.Names()
}

// RunAll runs every registered source.
func (o *Orchestrator) RunAll(ctx context.Context) *Report {
	srcs, _ := o.resolve(nil)

	o.runMu.Lock()
	defer o.runMu.Unlock()
	return o.run(ctx, "all", srcs)
}

// RunSources runs only the named sources. An empty list runs all of them.
// Unknown names fail with ErrUnknownSource before anything runs.
func (o *Orchestrator) RunSources(ctx context.Context, names []string) (*Report, error) {
	srcs, err := o.resolve(names)
	if err != nil {
		return nil, err
	}

	o.runMu.Lock()
	defer o.runMu.Unlock()
	return o.run(ctx, "selective", srcs), nil
}

// TriggerNow starts a run of the named sources in the background and returns
// immediately. It returns ErrUnknownSource or ErrRunInProgress without
// starting anything.
func (o *Orchestrator) TriggerNow(names []string) error {
	srcs, err := o.resolve(names)
	if err != nil {
		return err
	}
	if !o.runMu.TryLock() {
		return ErrRunInProgress
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		defer o.runMu.Unlock()
		o.run(o.background, "manual", srcs)
	}()
	return nil
}

// Close cancels background runs and waits for them to return.
func (o *Orchestrator) Close() {
	o.cancel()
	o.wg.Wait()
}

// resolve maps names to sources in registration order, dropping repeats.
func (o *Orchestrator) resolve(names []string) ([]sources.Source, error) {
	if len(names) == 0 {
		all := o.registry.Names()
		out := make([]sources.Source, 0, len(all))
		for _, n := range all {
			src, _ := o.registry.Get(n)
			out = append(out, src)
		}
		return out, nil
	}

	wanted := make(map[models.Source]bool, len(names))
	for _, raw := range names {
		name, err := models.ParseSource(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, raw)
		}
		if _, ok := o.registry.Get(name); !ok {
			return nil, fmt.Errorf("%w: %q is not enabled", ErrUnknownSource, raw)
		}
		wanted[name] = true
	}

	out := make([]sources.Source, 0, len(wanted))
	for _, n := range o.registry.Names() {
		if wanted[n] {
			src, _ := o.registry.Get(n)
			out = append(out, src)
		}
	}
	return out, nil
}

// run executes srcs concurrently. The caller holds runMu.
func (o *Orchestrator) run(ctx context.Context, trigger string, srcs []sources.Source) *Report {
	report := &Report{
		RunID:     uuid.New().String(),
		Trigger:   trigger,
		StartedAt: time.Now().UTC(),
		Sources:   make([]SourceReport, len(srcs)),
	}
	logger := o.logger.With().Str("run_id", report.RunID).Str("trigger", trigger).Logger()
	logger.Info().Int("sources", len(srcs)).Msg("Starting ingestion run")

	metrics.SetIngestInProgress(true)
	defer metrics.SetIngestInProgress(false)

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()
			report.Sources[i] = o.runSource(ctx, logger, src)
		}(i, src)
	}
	wg.Wait()

	report.FinishedAt = time.Now().UTC()
	fetched, created, updated, failed := report.Totals()
	logger.Info().
		Int("fetched", fetched).
		Int("created", created).
		Int("updated", updated).
		Int("failed", failed).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Ingestion run complete")

	o.mu.Lock()
	o.lastReport = report
	callback := o.onRunCompleted
	o.mu.Unlock()

	if callback != nil {
		callback(ctx, report)
	}
	return report
}

// runSource is the isolation boundary for one source. It never panics and
// never returns an error; failures are recorded on the report.
func (o *Orchestrator) runSource(ctx context.Context, parent zerolog.Logger, src sources.Source) (sr SourceReport) {
	name := src.Name()
	sr.Source = name
	logger := parent.With().Str("source", name.String()).Logger()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, o.sourceTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			sr.setErr(fmt.Errorf("panic in source %s: %v", name, r))
			logger.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Source panicked")
		}
		sr.Duration = time.Since(start)
		if sr.Skipped {
			metrics.RecordIngestSkipped(name.String())
			return
		}
		metrics.RecordIngestSource(name.String(), sr.Fetched, sr.Created, sr.Updated, sr.Failed, sr.Duration, sr.Err)
	}()

	records, err := src.Fetch(ctx)
	sr.Fetched = len(records)
	switch {
	case errors.Is(err, sources.ErrCredentialsUnavailable):
		sr.Skipped = true
		sr.setErr(err)
		logger.Warn().Err(err).Msg("Skipping source")
		return sr
	case err != nil && len(records) == 0:
		sr.setErr(err)
		logger.Error().Err(err).Msg("Source fetch failed")
		return sr
	case err != nil:
		sr.setErr(err)
		logger.Warn().Err(err).Int("records", len(records)).Msg("Source returned partial results")
	}

	if len(records) == 0 {
		logger.Info().Msg("Source returned no records")
		return sr
	}

	res := o.upserter.Upsert(ctx, records, name)
	sr.Created, sr.Updated, sr.Failed = res.Created, res.Updated, res.Failed

	logger.Info().
		Int("fetched", sr.Fetched).
		Int("created", sr.Created).
		Int("updated", sr.Updated).
		Int("failed", sr.Failed).
		Int("batches", res.Batches).
		Msg("Source ingested")
	return sr
}
