// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// mockStore records every batch and can fail selected ones.
type mockStore struct {
	mu       sync.Mutex
	maxBatch int
	failOn   map[int]bool // 1-based batch numbers
	batches  [][]WriteOp
	records  map[string]models.Hackathon
}

func newMockStore(maxBatch int) *mockStore {
	return &mockStore{maxBatch: maxBatch, failOn: map[int]bool{}, records: map[string]models.Hackathon{}}
}

func (m *mockStore) Backend() string   { return "mock" }
func (m *mockStore) MaxBatchSize() int { return m.maxBatch }
func (m *mockStore) Close() error      { return nil }

func (m *mockStore) BatchWrite(_ context.Context, ops []WriteOp) (BatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, ops)
	if m.failOn[len(m.batches)] {
		return BatchResult{}, errors.New("commit failed")
	}
	var res BatchResult
	for _, op := range ops {
		if _, ok := m.records[op.Key]; ok {
			res.Updated++
		} else {
			res.Created++
		}
		m.records[op.Key] = op.Record
	}
	return res, nil
}

func (m *mockStore) Query(_ context.Context, f models.Filter) ([]models.Hackathon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Hackathon, 0, len(m.records))
	for _, h := range m.records {
		h := h
		if f.Matches(&h) {
			out = append(out, h)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *mockStore) Get(_ context.Context, id string) (*models.Hackathon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.records {
		if h.ID == id {
			h := h
			return &h, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func manyHackathons(n int) []models.Hackathon {
	out := make([]models.Hackathon, n)
	for i := range out {
		out[i] = sampleHackathon(fmt.Sprintf("Hack %03d", i), models.SourceDevpost, day(2025, 1, 1).AddDate(0, 0, i))
	}
	return out
}

func TestNewUpserter_BatchSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured int
		storeMax   int
		want       int
	}{
		{"default", 0, 1000, DefaultBatchSize},
		{"configured below store limit", 100, 1000, 100},
		{"clamped to store limit", 800, 500, 500},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := NewUpserter(newMockStore(tt.storeMax), models.IdentitySlug, tt.configured)
			if got := u.BatchSize(); got != tt.want {
				t.Errorf("BatchSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpserter_ChunksInput(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	u := NewUpserter(s, models.IdentitySlug, 450)

	res := u.Upsert(context.Background(), manyHackathons(1000), models.SourceDevpost)

	if res.Batches != 3 {
		t.Errorf("Batches = %d, want 3", res.Batches)
	}
	if res.Created != 1000 || res.Updated != 0 || res.Failed != 0 {
		t.Errorf("result = %+v, want 1000 created", res)
	}
	sizes := []int{len(s.batches[0]), len(s.batches[1]), len(s.batches[2])}
	if !reflect.DeepEqual(sizes, []int{450, 450, 100}) {
		t.Errorf("batch sizes = %v, want [450 450 100]", sizes)
	}
}

func TestUpserter_FailedChunkDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	s.failOn[2] = true
	u := NewUpserter(s, models.IdentitySlug, 10)

	res := u.Upsert(context.Background(), manyHackathons(25), models.SourceDevpost)

	if res.Batches != 3 {
		t.Fatalf("Batches = %d, want 3", res.Batches)
	}
	if res.Failed != 10 {
		t.Errorf("Failed = %d, want 10", res.Failed)
	}
	if res.Created != 15 {
		t.Errorf("Created = %d, want 15", res.Created)
	}
	if n, _ := s.Count(context.Background()); n != 15 {
		t.Errorf("stored = %d, want 15", n)
	}
}

func TestUpserter_CollapsesDuplicatesLastWins(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	u := NewUpserter(s, models.IdentitySlug, 450)

	first := sampleHackathon("HackMIT 2025", models.SourceMLH, day(2025, 9, 13))
	other := sampleHackathon("Cal Hacks", models.SourceMLH, day(2025, 10, 1))
	second := first
	second.Title = "  hackmit   2025 "
	second.Prize = "$50,000"

	res := u.Upsert(context.Background(), []models.Hackathon{first, other, second}, models.SourceMLH)

	if res.Created != 2 {
		t.Fatalf("Created = %d, want 2", res.Created)
	}
	if len(s.batches) != 1 || len(s.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 ops, got %v", s.batches)
	}
	if got := s.batches[0][0].Record.Prize; got != "$50,000" {
		t.Errorf("kept record prize = %q, want last occurrence", got)
	}
}

func TestUpserter_StampsLastUpdatedAndSource(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	u := NewUpserter(s, models.IdentitySlug, 450)
	fixed := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	u.now = func() time.Time { return fixed }

	h := sampleHackathon("Kaggle Comp", "", day(2025, 3, 1))
	h.LastUpdated = day(1999, 1, 1)
	h.Skills = nil

	u.Upsert(context.Background(), []models.Hackathon{h}, models.SourceKaggle)

	op := s.batches[0][0]
	if !op.Record.LastUpdated.Equal(fixed) {
		t.Errorf("LastUpdated = %v, want %v", op.Record.LastUpdated, fixed)
	}
	if op.Record.Source != models.SourceKaggle {
		t.Errorf("Source = %q, want kaggle", op.Record.Source)
	}
	if op.Key != "kaggle:kaggle-comp" {
		t.Errorf("Key = %q", op.Key)
	}
	if op.Record.Skills == nil {
		t.Error("Skills should be an empty slice, not nil")
	}
}

func TestUpserter_DatedIdentity(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	u := NewUpserter(s, models.IdentityDated, 450)

	a := sampleHackathon("Winter Hack", models.SourceDevpost, day(2024, 12, 1))
	b := sampleHackathon("Winter Hack", models.SourceDevpost, day(2025, 12, 1))

	res := u.Upsert(context.Background(), []models.Hackathon{a, b}, models.SourceDevpost)
	if res.Created != 2 {
		t.Errorf("Created = %d, want 2 distinct dated editions", res.Created)
	}
}

func TestUpserter_CancelledContext(t *testing.T) {
	t.Parallel()

	s := newMockStore(1000)
	u := NewUpserter(s, models.IdentitySlug, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := u.Upsert(ctx, manyHackathons(25), models.SourceDevpost)
	if res.Failed != 25 {
		t.Errorf("Failed = %d, want 25", res.Failed)
	}
	if len(s.batches) != 0 {
		t.Errorf("store received %d batches after cancel", len(s.batches))
	}
}

func TestUpserter_EmptyInput(t *testing.T) {
	t.Parallel()

	u := NewUpserter(newMockStore(1000), models.IdentitySlug, 450)
	if res := u.Upsert(context.Background(), nil, models.SourceMLH); res != (UpsertResult{}) {
		t.Errorf("Upsert(nil) = %+v, want zero", res)
	}
}

// TestUpserter_Idempotent runs against the real backends: a second identical
// upsert leaves the count and every field except lastUpdated unchanged.
func TestUpserter_Idempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			u := NewUpserter(s, models.IdentitySlug, 2)
			clock := day(2025, 1, 1)
			u.now = func() time.Time { return clock }

			input := manyHackathons(5)
			first := u.Upsert(ctx, input, models.SourceDevpost)
			before, err := s.Query(ctx, models.Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}

			clock = clock.Add(time.Hour)
			second := u.Upsert(ctx, input, models.SourceDevpost)
			after, err := s.Query(ctx, models.Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}

			if first.Created != 5 || second.Created != 0 || second.Updated != 5 {
				t.Errorf("first = %+v, second = %+v", first, second)
			}
			if first.Batches != 3 {
				t.Errorf("Batches = %d, want 3", first.Batches)
			}
			if len(before) != len(after) {
				t.Fatalf("count changed: %d -> %d", len(before), len(after))
			}
			for i := range before {
				if !after[i].LastUpdated.After(before[i].LastUpdated) {
					t.Errorf("%s: lastUpdated not bumped", after[i].Title)
				}
				b, a := before[i], after[i]
				b.LastUpdated, a.LastUpdated = time.Time{}, time.Time{}
				if !reflect.DeepEqual(a, b) {
					t.Errorf("record changed on re-upsert:\nbefore %+v\nafter  %+v", b, a)
				}
			}
		})
	}
}

// TestUpserter_EndToEndNewAndUpdated covers a source that returns three
// events, one of which already exists.
func TestUpserter_EndToEndNewAndUpdated(t *testing.T) {
	ctx := context.Background()
	for name, s := range openTestStores(t) {
		s := s
		t.Run(name, func(t *testing.T) {
			u := NewUpserter(s, models.IdentitySlug, 450)

			existing := sampleHackathon("HackMIT 2025", models.SourceMLH, day(2025, 9, 13))
			u.Upsert(ctx, []models.Hackathon{existing}, models.SourceMLH)

			existing.Location = "Cambridge, MA"
			batch := []models.Hackathon{
				existing,
				sampleHackathon("PennApps", models.SourceMLH, day(2025, 9, 20)),
				sampleHackathon("HackGT", models.SourceMLH, day(2025, 10, 3)),
			}
			res := u.Upsert(ctx, batch, models.SourceMLH)

			if res.Created != 2 || res.Updated != 1 {
				t.Errorf("result = %+v, want 2 created 1 updated", res)
			}
			n, err := s.Count(ctx)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if n != 3 {
				t.Errorf("Count() = %d, want 3", n)
			}
			got, err := s.Get(ctx, models.RecordID("mlh:hackmit-2025"))
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Location != "Cambridge, MA" {
				t.Errorf("Location = %q, want updated value", got.Location)
			}
		})
	}
}
