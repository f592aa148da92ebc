// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/sources"
	"github.com/prem22k/Hack-Hunt/internal/store"
)

// fakeSource returns canned records, an error, or panics.
type fakeSource struct {
	name    models.Source
	records []models.Hackathon
	err     error
	panics  bool
	block   chan struct{} // when set, Fetch waits for close or ctx
	calls   int
	mu      sync.Mutex
}

func (f *fakeSource) Name() models.Source { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) ([]models.Hackathon, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.panics {
		panic("selector exploded")
	}
	return f.records, f.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func records(source models.Source, titles ...string) []models.Hackathon {
	out := make([]models.Hackathon, 0, len(titles))
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, title := range titles {
		out = append(out, models.Hackathon{
			Title:           title,
			StartDate:       start,
			EndDate:         start,
			Mode:            models.ModeOnline,
			Skills:          []string{},
			RegistrationURL: "https://example.com/" + models.Slug(title),
			Source:          source,
		})
	}
	return out
}

func newBadgerUpserter(t *testing.T) (*store.Upserter, store.DocumentStore) {
	t.Helper()
	db, err := store.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return store.NewUpserter(db, models.IdentitySlug, 450), db
}

func newOrchestrator(t *testing.T, up Upserter, srcs ...sources.Source) *Orchestrator {
	t.Helper()
	reg := sources.NewRegistry()
	for _, s := range srcs {
		if err := reg.Register(s); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	o := NewOrchestrator(reg, up, 2*time.Second)
	t.Cleanup(o.Close)
	return o
}

func TestOrchestrator_PartialFailureIsolation(t *testing.T) {
	up, db := newBadgerUpserter(t)
	a := &fakeSource{name: models.SourceMLH, records: records(models.SourceMLH, "HackMIT", "PennApps")}
	b := &fakeSource{name: models.SourceDevpost, panics: true}
	c := &fakeSource{name: models.SourceDevfolio, records: records(models.SourceDevfolio, "ETHIndia")}
	d := &fakeSource{name: models.SourceKaggle, err: errors.New("connection refused")}

	o := newOrchestrator(t, up, a, b, c, d)
	report := o.RunAll(context.Background())

	if len(report.Sources) != 4 {
		t.Fatalf("report has %d sources, want 4", len(report.Sources))
	}
	n, err := db.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 3 {
		t.Errorf("stored %d records, want 3 from the healthy sources", n)
	}

	devpost, _ := report.Source(models.SourceDevpost)
	if devpost.Err == nil || devpost.Error == "" {
		t.Error("panicking source should carry an error on its report")
	}
	kaggle, _ := report.Source(models.SourceKaggle)
	if kaggle.Err == nil {
		t.Error("failing source should carry an error on its report")
	}
	mlh, _ := report.Source(models.SourceMLH)
	if mlh.Created != 2 || mlh.Fetched != 2 {
		t.Errorf("mlh report = %+v", mlh)
	}

	errored := report.Errored()
	if len(errored) != 2 {
		t.Errorf("Errored() = %v, want devpost and kaggle", errored)
	}
	if o.LastReport() != report {
		t.Error("LastReport() should return the finished run")
	}
}

func TestOrchestrator_CredentialsUnavailableIsSkipped(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	k := &fakeSource{name: models.SourceKaggle, records: []models.Hackathon{}, err: sources.ErrCredentialsUnavailable}
	m := &fakeSource{name: models.SourceMLH, records: records(models.SourceMLH, "HackMIT")}

	report := newOrchestrator(t, up, m, k).RunAll(context.Background())

	kr, ok := report.Source(models.SourceKaggle)
	if !ok || !kr.Skipped {
		t.Errorf("kaggle report = %+v, want skipped", kr)
	}
	if len(report.Errored()) != 0 {
		t.Errorf("Errored() = %v, skipped sources are not failures", report.Errored())
	}
}

func TestOrchestrator_ReportKeepsRegistrationOrder(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	srcs := []sources.Source{
		&fakeSource{name: models.SourceMLH},
		&fakeSource{name: models.SourceKaggle},
		&fakeSource{name: models.SourceDevpost},
	}
	report := newOrchestrator(t, up, srcs...).RunAll(context.Background())

	for i, want := range []models.Source{models.SourceMLH, models.SourceKaggle, models.SourceDevpost} {
		if report.Sources[i].Source != want {
			t.Errorf("Sources[%d] = %s, want %s", i, report.Sources[i].Source, want)
		}
	}
}

func TestOrchestrator_RunSources(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	m := &fakeSource{name: models.SourceMLH}
	k := &fakeSource{name: models.SourceKaggle}
	d := &fakeSource{name: models.SourceDevpost}
	o := newOrchestrator(t, up, m, k, d)

	report, err := o.RunSources(context.Background(), []string{"devpost", "MLH", "mlh"})
	if err != nil {
		t.Fatalf("RunSources() error = %v", err)
	}
	if len(report.Sources) != 2 {
		t.Fatalf("ran %d sources, want 2", len(report.Sources))
	}
	if report.Sources[0].Source != models.SourceMLH || report.Sources[1].Source != models.SourceDevpost {
		t.Errorf("sources = %v", report.Sources)
	}
	if k.Calls() != 0 {
		t.Error("kaggle should not have run")
	}
}

func TestOrchestrator_RunSourcesUnknown(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	m := &fakeSource{name: models.SourceMLH}
	o := newOrchestrator(t, up, m)

	for _, names := range [][]string{{"mlh", "hackerearth"}, {"devfolio"}} {
		_, err := o.RunSources(context.Background(), names)
		if !errors.Is(err, ErrUnknownSource) {
			t.Errorf("RunSources(%v) error = %v, want ErrUnknownSource", names, err)
		}
	}
	if m.Calls() != 0 {
		t.Error("no source should run when a name is unknown")
	}
}

func TestOrchestrator_SourceTimeout(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	slow := &fakeSource{name: models.SourceDevpost, block: make(chan struct{})}
	fast := &fakeSource{name: models.SourceMLH, records: records(models.SourceMLH, "HackMIT")}

	reg := sources.NewRegistry()
	_ = reg.Register(fast)
	_ = reg.Register(slow)
	o := NewOrchestrator(reg, up, 50*time.Millisecond)
	defer o.Close()

	report := o.RunAll(context.Background())

	sr, _ := report.Source(models.SourceDevpost)
	if !errors.Is(sr.Err, context.DeadlineExceeded) {
		t.Errorf("slow source error = %v, want deadline exceeded", sr.Err)
	}
	fr, _ := report.Source(models.SourceMLH)
	if fr.Created != 1 {
		t.Errorf("fast source created = %d, want 1", fr.Created)
	}
}

func TestOrchestrator_TriggerNowInProgress(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	release := make(chan struct{})
	slow := &fakeSource{name: models.SourceMLH, block: release}
	o := newOrchestrator(t, up, slow)

	completed := make(chan *Report, 1)
	o.SetOnRunCompleted(func(_ context.Context, r *Report) { completed <- r })

	if err := o.TriggerNow(nil); err != nil {
		t.Fatalf("TriggerNow() error = %v", err)
	}
	// Wait until the first run is inside Fetch.
	deadline := time.Now().Add(2 * time.Second)
	for slow.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	if err := o.TriggerNow([]string{"mlh"}); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("second TriggerNow() error = %v, want ErrRunInProgress", err)
	}
	if err := o.TriggerNow([]string{"nope"}); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("TriggerNow(unknown) error = %v, want ErrUnknownSource", err)
	}

	close(release)
	select {
	case r := <-completed:
		if r.Trigger != "manual" {
			t.Errorf("Trigger = %q, want manual", r.Trigger)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("triggered run did not complete")
	}

	// The lock is released once the callback returns and the goroutine exits.
	deadline = time.Now().Add(2 * time.Second)
	for {
		err := o.TriggerNow(nil)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("TriggerNow() after completion error = %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOrchestrator_RunsAreSerialized(t *testing.T) {
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	up := upserterFunc(func(ctx context.Context, evs []models.Hackathon, _ models.Source) store.UpsertResult {
		mu.Lock()
		active++
		if active > maxSeen {
			maxSeen = active
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		active--
		mu.Unlock()
		return store.UpsertResult{Created: len(evs)}
	})

	src := &fakeSource{name: models.SourceMLH, records: records(models.SourceMLH, "HackMIT")}
	o := newOrchestrator(t, up, src)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.RunAll(context.Background())
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent runs = %d, want 1", maxSeen)
	}
}

func TestOrchestrator_EventSummary(t *testing.T) {
	up, _ := newBadgerUpserter(t)
	src := &fakeSource{name: models.SourceMLH, records: records(models.SourceMLH, "A", "B", "A")}
	report := newOrchestrator(t, up, src).RunAll(context.Background())

	e := report.Event()
	if e.RunID != report.RunID || len(e.Sources) != 1 {
		t.Fatalf("Event() = %+v", e)
	}
	if e.Sources[0].Fetched != 3 || e.Sources[0].Created != 2 {
		t.Errorf("summary = %+v, want fetched 3 created 2", e.Sources[0])
	}
	if !e.Changed() {
		t.Error("Changed() = false")
	}
	fetched, created, updated, failed := report.Totals()
	if fmt.Sprint(fetched, created, updated, failed) != "3 2 0 0" {
		t.Errorf("Totals() = %d %d %d %d", fetched, created, updated, failed)
	}
}

type upserterFunc func(ctx context.Context, evs []models.Hackathon, src models.Source) store.UpsertResult

func (f upserterFunc) Upsert(ctx context.Context, evs []models.Hackathon, src models.Source) store.UpsertResult {
	return f(ctx, evs, src)
}
