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

	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/recommend"
)

// Recommend handles POST /api/hackathons/recommend.
//
// Body:
//
//	{
//	  "skills": ["Python", "React"],
//	  "location": "Hyderabad",
//	  "filters": {"mode": "online", "isPaid": false},
//	  "hackathons": [...]
//	}
//
// When hackathons is present it replaces the stored corpus as the candidate
// pool. Provider failures never surface here; the response tier tells which
// stage produced the ranking.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limitBody(w, r)

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, ErrCodeValidation, "Request body too large", nil)
			return
		}
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid JSON body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.recommendTimeout)
	defer cancel()

	result, err := h.recommender.Recommend(ctx, recommend.Input{
		Skills:     req.Skills,
		Location:   req.Location,
		Filters:    req.filter(),
		Hackathons: req.Hackathons,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Failed to generate recommendations", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("tier", string(result.Tier)).
		Int("candidates", result.Candidates).
		Int("results", len(result.Recommendations)).
		Bool("cached", result.Cached).
		Msg("Recommendations served")

	respondSuccess(w, http.StatusOK, result, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       len(result.Recommendations),
		Cached:      result.Cached,
	})
}
