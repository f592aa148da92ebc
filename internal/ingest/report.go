// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package ingest

import (
	"time"

	"github.com/prem22k/Hack-Hunt/internal/events"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// SourceReport is the outcome of one source's fetch and upsert.
type SourceReport struct {
	Source   models.Source `json:"source"`
	Fetched  int           `json:"fetched"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Failed   int           `json:"failed"`
	Skipped  bool          `json:"skipped,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// setErr records err on both the typed and the serialized field.
func (r *SourceReport) setErr(err error) {
	r.Err = err
	if err != nil {
		r.Error = err.Error()
	}
}

// Report is the outcome of one ingestion run. Sources appear in registration
// order.
type Report struct {
	RunID      string         `json:"runId"`
	Trigger    string         `json:"trigger"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Sources    []SourceReport `json:"sources"`
}

// Totals sums the per-source counters.
func (r *Report) Totals() (fetched, created, updated, failed int) {
	for i := range r.Sources {
		fetched += r.Sources[i].Fetched
		created += r.Sources[i].Created
		updated += r.Sources[i].Updated
		failed += r.Sources[i].Failed
	}
	return fetched, created, updated, failed
}

// Errored returns the sources that failed outright. Skipped sources are not
// failures.
func (r *Report) Errored() []models.Source {
	var out []models.Source
	for i := range r.Sources {
		if r.Sources[i].Err != nil && !r.Sources[i].Skipped {
			out = append(out, r.Sources[i].Source)
		}
	}
	return out
}

// Source returns the report for name, if it ran.
func (r *Report) Source(name models.Source) (SourceReport, bool) {
	for i := range r.Sources {
		if r.Sources[i].Source == name {
			return r.Sources[i], true
		}
	}
	return SourceReport{}, false
}

// Event converts the report into its published form.
func (r *Report) Event() *events.IngestCompleted {
	e := &events.IngestCompleted{
		RunID:      r.RunID,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
		Sources:    make([]events.SourceSummary, 0, len(r.Sources)),
	}
	for i := range r.Sources {
		s := &r.Sources[i]
		e.Sources = append(e.Sources, events.SourceSummary{
			Source:  s.Source.String(),
			Fetched: s.Fetched,
			Created: s.Created,
			Updated: s.Updated,
			Failed:  s.Failed,
			Error:   s.Error,
		})
	}
	return e
}
