// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// DefaultBatchSize is used when no batch size is configured.
const DefaultBatchSize = 450

// UpsertResult summarizes one Upsert call.
type UpsertResult struct {
	Created int
	Updated int
	Failed  int
	Batches int
}

// Upserter deduplicates canonical records and writes them to a DocumentStore
// in bounded, independently committed batches.
type Upserter struct {
	store     DocumentStore
	strategy  models.IdentityStrategy
	batchSize int
	now       func() time.Time
	logger    zerolog.Logger
}

// NewUpserter creates an upserter. The effective batch size is the smaller of
// batchSize and the store's own limit.
func NewUpserter(store DocumentStore, strategy models.IdentityStrategy, batchSize int) *Upserter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if limit := store.MaxBatchSize(); limit > 0 && batchSize > limit {
		batchSize = limit
	}
	if strategy == "" {
		strategy = models.IdentitySlug
	}
	return &Upserter{
		store:     store,
		strategy:  strategy,
		batchSize: batchSize,
		now:       time.Now,
		logger:    logging.WithComponent("upserter"),
	}
}

// BatchSize returns the effective chunk size.
func (u *Upserter) BatchSize() int {
	return u.batchSize
}

// Upsert writes events under their identity keys. Duplicate keys within the
// input collapse to the last occurrence. Every record is stamped with the
// current time. A chunk that fails to commit is logged and counted in Failed;
// later chunks still run.
func (u *Upserter) Upsert(ctx context.Context, events []models.Hackathon, source models.Source) UpsertResult {
	var result UpsertResult
	ops := u.prepare(events, source)
	if len(ops) == 0 {
		return result
	}

	for start := 0; start < len(ops); start += u.batchSize {
		end := start + u.batchSize
		if end > len(ops) {
			end = len(ops)
		}
		chunk := ops[start:end]
		result.Batches++

		if err := ctx.Err(); err != nil {
			u.logger.Warn().Err(err).
				Str("source", source.String()).
				Int("remaining", len(ops)-start).
				Msg("Upsert cancelled, skipping remaining batches")
			result.Failed += len(ops) - start
			metrics.RecordBatchWrite(u.store.Backend(), len(ops)-start, err)
			break
		}

		res, err := u.store.BatchWrite(ctx, chunk)
		metrics.RecordBatchWrite(u.store.Backend(), len(chunk), err)
		if err != nil {
			u.logger.Error().Err(err).
				Str("source", source.String()).
				Int("batch", result.Batches).
				Int("size", len(chunk)).
				Msg("Batch commit failed")
			result.Failed += len(chunk)
			continue
		}
		result.Created += res.Created
		result.Updated += res.Updated
	}

	u.logger.Debug().
		Str("source", source.String()).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", result.Failed).
		Int("batches", result.Batches).
		Msg("Upsert complete")
	return result
}

// prepare computes identity keys, collapses duplicates keeping the last
// occurrence at the position of the first, and stamps LastUpdated.
func (u *Upserter) prepare(events []models.Hackathon, source models.Source) []WriteOp {
	now := u.now().UTC()
	index := make(map[string]int, len(events))
	ops := make([]WriteOp, 0, len(events))

	for i := range events {
		h := events[i]
		if source != "" {
			h.Source = source
		}
		if h.Skills == nil {
			h.Skills = []string{}
		}
		h.LastUpdated = now

		key := models.IdentityKey(&h, u.strategy)
		h.ID = models.RecordID(key)

		if pos, ok := index[key]; ok {
			ops[pos].Record = h
			continue
		}
		index[key] = len(ops)
		ops = append(ops, WriteOp{Key: key, Record: h})
	}
	return ops
}
