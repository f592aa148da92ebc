// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/events"
)

type fakeScheduler struct {
	startErr error
	stopErr  error
	starts   atomic.Int32
	stops    atomic.Int32
}

func (f *fakeScheduler) Start(context.Context) error {
	f.starts.Add(1)
	return f.startErr
}

func (f *fakeScheduler) Stop() error {
	f.stops.Add(1)
	return f.stopErr
}

func TestSchedulerService(t *testing.T) {
	t.Run("starts and stops with the context", func(t *testing.T) {
		sched := &fakeScheduler{}
		svc := NewSchedulerService(sched)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}
		if sched.starts.Load() != 1 || sched.stops.Load() != 1 {
			t.Errorf("expected 1 start and 1 stop, got %d/%d", sched.starts.Load(), sched.stops.Load())
		}
	})

	t.Run("start failure is returned without stopping", func(t *testing.T) {
		sched := &fakeScheduler{startErr: errors.New("bad cron")}
		err := NewSchedulerService(sched).Serve(context.Background())
		if !errors.Is(err, sched.startErr) {
			t.Errorf("expected start error, got %v", err)
		}
		if sched.stops.Load() != 0 {
			t.Error("Stop must not run after a failed Start")
		}
	})

	t.Run("stop failure is returned", func(t *testing.T) {
		sched := &fakeScheduler{stopErr: errors.New("stuck run")}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := NewSchedulerService(sched).Serve(ctx); !errors.Is(err, sched.stopErr) {
			t.Errorf("expected stop error, got %v", err)
		}
	})

	if got := NewSchedulerService(&fakeScheduler{}).String(); got != "ingest-scheduler" {
		t.Errorf("unexpected name %q", got)
	}
}

// fakeEventSource hands each published event to the listening handler.
type fakeEventSource struct {
	listenErr error
	events    []*events.IngestCompleted
}

func (f *fakeEventSource) Listen(ctx context.Context, h events.Handler) error {
	for _, e := range f.events {
		if err := h(ctx, e); err != nil {
			return err
		}
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestEventListenerService(t *testing.T) {
	t.Run("delivers events until cancelled", func(t *testing.T) {
		var mu sync.Mutex
		var seen []string
		source := &fakeEventSource{events: []*events.IngestCompleted{{RunID: "run-1"}, {RunID: "run-2"}}}
		svc := NewEventListenerService("cache-invalidator", source, func(_ context.Context, e *events.IngestCompleted) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, e.RunID)
			return nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected DeadlineExceeded, got %v", err)
		}

		mu.Lock()
		defer mu.Unlock()
		if len(seen) != 2 || seen[0] != "run-1" || seen[1] != "run-2" {
			t.Errorf("unexpected deliveries %v", seen)
		}
	})

	t.Run("early subscription end is a failure", func(t *testing.T) {
		source := &fakeEventSource{listenErr: context.Canceled}
		svc := NewEventListenerService("", source, func(context.Context, *events.IngestCompleted) error { return nil })

		err := svc.Serve(context.Background())
		if err == nil {
			t.Fatal("expected an error so the supervisor resubscribes")
		}
		if svc.String() != "event-listener" {
			t.Errorf("expected default name, got %q", svc.String())
		}
	})

	t.Run("subscribe error is wrapped", func(t *testing.T) {
		subErr := errors.New("subscribe to ingest.completed: closed")
		source := &fakeEventSource{listenErr: subErr}
		svc := NewEventListenerService("x", source, func(context.Context, *events.IngestCompleted) error { return nil })

		if err := svc.Serve(context.Background()); !errors.Is(err, subErr) {
			t.Errorf("expected wrapped subscribe error, got %v", err)
		}
	})
}

type fakeCollector struct {
	calls atomic.Int32
	err   error
	done  chan struct{}
}

func (f *fakeCollector) CollectGarbage(context.Context) error {
	if f.calls.Add(1) == 2 {
		close(f.done)
	}
	return f.err
}

func TestStoreMaintenanceService(t *testing.T) {
	for _, gcErr := range []error{nil, errors.New("value log gc: disk full")} {
		gc := &fakeCollector{err: gcErr, done: make(chan struct{})}
		svc := NewStoreMaintenanceService(gc, 5*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		select {
		case <-gc.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("gc err %v: collector ran %d times", gcErr, gc.calls.Load())
		}
		cancel()

		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	}

	if svc := NewStoreMaintenanceService(&fakeCollector{}, 0); svc.interval != DefaultMaintenanceInterval {
		t.Errorf("expected default interval, got %v", svc.interval)
	}
}
