// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/store"
)

// ListHackathons handles GET /api/hackathons.
//
// Query parameters: skills (comma separated, any-of), mode, isPaid, source,
// location. Results are sorted by start date ascending.
func (h *Handler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseListRequest(r.URL.Query())
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hackathons, err := h.store.Query(ctx, req.Filter())
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to query hackathons", err)
		return
	}
	if hackathons == nil {
		hackathons = []models.Hackathon{}
	}

	logging.Ctx(r.Context()).Debug().Int("count", len(hackathons)).Msg("Listed hackathons")
	respondRevalidated(w, r, hackathons, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       len(hackathons),
	})
}

// GetHackathon handles GET /api/hackathons/{id}.
func (h *Handler) GetHackathon(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 64 {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid hackathon id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	hackathon, err := h.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Hackathon not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to load hackathon", err)
		return
	}

	respondRevalidated(w, r, hackathon, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       1,
	})
}
