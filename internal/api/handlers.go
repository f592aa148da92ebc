// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package api

import (
	"context"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/ingest"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/recommend"
)

// HackathonReader is the read side of the document store.
type HackathonReader interface {
	Query(ctx context.Context, filter models.Filter) ([]models.Hackathon, error)
	Get(ctx context.Context, id string) (*models.Hackathon, error)
	Count(ctx context.Context) (int, error)
}

// Recommender serves ranked recommendations.
type Recommender interface {
	Recommend(ctx context.Context, in recommend.Input) (recommend.Result, error)
}

// IngestController starts background ingestion runs and reports on them.
type IngestController interface {
	TriggerNow(names []string) error
	LastReport() *ingest.Report
	Sources() []models.Source
}

// Handler holds the dependencies shared by every endpoint.
//
// Endpoints are grouped by file:
//   - handlers_hackathons.go: list and get
//   - handlers_recommend.go: recommendations
//   - handlers_ingest.go: manual trigger and last run status
//   - handlers_health.go: liveness and readiness
type Handler struct {
	store            HackathonReader
	recommender      Recommender
	ingest           IngestController
	recommendTimeout time.Duration
	startTime        time.Time
}

// NewHandler creates a handler. ingest may be nil when the process serves
// reads only; the ingest endpoints then answer 503.
func NewHandler(store HackathonReader, recommender Recommender, ingestCtl IngestController, cfg config.APIConfig) *Handler {
	timeout := cfg.RecommendTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Handler{
		store:            store,
		recommender:      recommender,
		ingest:           ingestCtl,
		recommendTimeout: timeout,
		startTime:        time.Now(),
	}
}
