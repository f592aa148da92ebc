// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// DefaultTopic carries IngestCompleted events.
const DefaultTopic = "ingest.completed"

// SourceSummary is the per-source part of an IngestCompleted event.
type SourceSummary struct {
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

// IngestCompleted is published once per finished ingestion run.
type IngestCompleted struct {
	RunID      string          `json:"runId"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Sources    []SourceSummary `json:"sources"`
}

// Changed reports whether the run wrote anything.
func (e *IngestCompleted) Changed() bool {
	for _, s := range e.Sources {
		if s.Created > 0 || s.Updated > 0 {
			return true
		}
	}
	return false
}

// Marshal encodes the event as JSON.
func (e *IngestCompleted) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal ingest event: %w", err)
	}
	return data, nil
}

// UnmarshalIngestCompleted decodes a message payload.
func UnmarshalIngestCompleted(data []byte) (*IngestCompleted, error) {
	var e IngestCompleted
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal ingest event: %w", err)
	}
	return &e, nil
}
