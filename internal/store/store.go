// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"errors"
	"sort"

	"github.com/prem22k/Hack-Hunt/internal/models"
)

// ErrNotFound is returned by Get when no record has the requested ID.
var ErrNotFound = errors.New("hackathon not found")

// WriteOp is a single set-with-merge of Record under Key.
type WriteOp struct {
	Key    string
	Record models.Hackathon
}

// BatchResult reports how many keys in a committed batch were new.
type BatchResult struct {
	Created int
	Updated int
}

// DocumentStore is the durable collaborator behind the upserter and the API.
// Implementations must be safe for concurrent use.
type DocumentStore interface {
	// Backend names the implementation for logs and metrics.
	Backend() string

	// BatchWrite commits all ops atomically. Each op overwrites the record
	// stored under its key, or creates it. The record ID is derived from the key.
	BatchWrite(ctx context.Context, ops []WriteOp) (BatchResult, error)

	// Query returns every record matching f, ordered by start date ascending.
	Query(ctx context.Context, f models.Filter) ([]models.Hackathon, error)

	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*models.Hackathon, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// MaxBatchSize is the largest number of ops a single BatchWrite accepts.
	MaxBatchSize() int

	Close() error
}

// sortByStart orders records by start date, then title, so results are stable
// across backends.
func sortByStart(records []models.Hackathon) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].StartDate.Equal(records[j].StartDate) {
			return records[i].StartDate.Before(records[j].StartDate)
		}
		return records[i].Title < records[j].Title
	})
}
