// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package api

import (
	"errors"
	"net/http"

	"github.com/prem22k/Hack-Hunt/internal/ingest"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// TriggerIngest handles POST /api/ingest?sources=mlh,kaggle.
//
// The run starts in the background and the handler answers 202 at once.
// Without a sources parameter every registered source runs.
func (h *Handler) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	if h.ingest == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceNotReady, "Ingestion is not available", nil)
		return
	}

	names := parseCommaSeparated(r.URL.Query().Get("sources"))
	err := h.ingest.TriggerNow(names)
	switch {
	case errors.Is(err, ingest.ErrUnknownSource):
		respondErrorDetails(w, http.StatusBadRequest, ErrCodeUnknownSource, err.Error(),
			map[string]interface{}{"available": h.ingest.Sources()}, nil)
		return
	case errors.Is(err, ingest.ErrRunInProgress):
		respondError(w, http.StatusConflict, ErrCodeIngestInProgress, "An ingestion run is already in progress", nil)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to start ingestion", err)
		return
	}

	logging.Ctx(r.Context()).Info().Strs("sources", names).Msg("Manual ingestion triggered")

	requested := names
	if len(requested) == 0 {
		for _, s := range h.ingest.Sources() {
			requested = append(requested, s.String())
		}
	}
	respondSuccess(w, http.StatusAccepted, map[string]interface{}{
		"accepted": true,
		"sources":  requested,
	}, models.Metadata{})
}

// IngestStatus handles GET /api/ingest/status with the last finished run.
// Data is null before the first run completes.
func (h *Handler) IngestStatus(w http.ResponseWriter, _ *http.Request) {
	if h.ingest == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceNotReady, "Ingestion is not available", nil)
		return
	}

	report := h.ingest.LastReport()
	if report == nil {
		respondSuccess(w, http.StatusOK, nil, models.Metadata{})
		return
	}

	fetched, created, updated, failed := report.Totals()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"report": report,
		"totals": map[string]int{
			"fetched": fetched,
			"created": created,
			"updated": updated,
			"failed":  failed,
		},
		"errored": report.Errored(),
	}, models.Metadata{Count: len(report.Sources)})
}
