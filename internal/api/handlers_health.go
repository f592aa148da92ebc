// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// HealthLive reports that the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady answers 200 once the store responds, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	count, err := h.store.Count(ctx)
	ready := err == nil

	data := map[string]interface{}{
		"store_connected": ready,
		"ready_to_serve":  ready,
		"hackathons":      count,
		"uptime":          time.Since(h.startTime).Seconds(),
	}
	if h.ingest != nil {
		if report := h.ingest.LastReport(); report != nil {
			data["last_ingest"] = report.FinishedAt
		}
	}

	if !ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "not_ready",
			Data:     data,
			Metadata: models.Metadata{Timestamp: time.Now().UTC()},
			Error: &models.APIError{
				Code:    ErrCodeServiceNotReady,
				Message: "Store is not reachable",
			},
		})
		return
	}
	respondSuccess(w, http.StatusOK, data, models.Metadata{})
}
