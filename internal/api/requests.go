// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// ListHackathonsRequest holds the query parameters of GET /api/hackathons.
type ListHackathonsRequest struct {
	Mode     string   `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	IsPaid   string   `json:"isPaid" validate:"omitempty,oneof=true false"`
	Source   string   `json:"source" validate:"omitempty,oneof=mlh devpost devfolio kaggle"`
	Skills   []string `json:"skills" validate:"omitempty,max=20,dive,notblank,max=64"`
	Location string   `json:"location" validate:"omitempty,max=128"`
}

func parseListRequest(q url.Values) ListHackathonsRequest {
	return ListHackathonsRequest{
		Mode:     q.Get("mode"),
		IsPaid:   q.Get("isPaid"),
		Source:   q.Get("source"),
		Skills:   parseCommaSeparated(q.Get("skills")),
		Location: q.Get("location"),
	}
}

// Filter converts a validated request to a store filter.
func (r *ListHackathonsRequest) Filter() models.Filter {
	f := models.Filter{
		Mode:     models.Mode(r.Mode),
		Source:   models.Source(r.Source),
		Skills:   r.Skills,
		Location: r.Location,
	}
	if r.IsPaid != "" {
		paid, _ := strconv.ParseBool(r.IsPaid)
		f.IsPaid = &paid
	}
	return f
}

// RecommendFilters are the optional hard filters of a recommend request.
type RecommendFilters struct {
	Mode     models.Mode `json:"mode" validate:"omitempty,oneof=online offline hybrid"`
	IsPaid   *bool       `json:"isPaid"`
	Location string      `json:"location" validate:"omitempty,max=128"`
}

// RecommendRequest is the body of POST /api/hackathons/recommend.
type RecommendRequest struct {
	Skills     []string           `json:"skills" validate:"required,min=1,max=50,dive,notblank,max=64"`
	Location   string             `json:"location" validate:"omitempty,max=128"`
	Filters    *RecommendFilters  `json:"filters" validate:"omitempty"`
	Hackathons []models.Hackathon `json:"hackathons" validate:"omitempty,max=500,dive"`
}

func (r *RecommendRequest) filter() models.Filter {
	if r.Filters == nil {
		return models.Filter{}
	}
	return models.Filter{
		Mode:     r.Filters.Mode,
		IsPaid:   r.Filters.IsPaid,
		Location: r.Filters.Location,
	}
}

// maxBodyBytes bounds request bodies; inline candidate pools can be large.
const maxBodyBytes = 2 << 20

func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
