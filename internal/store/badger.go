// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	hackathonKeyPrefix = "hackathon:"
	idKeyPrefix        = "id:"
)

// badgerMaxBatch keeps a batch well below badger's transaction size limit.
const badgerMaxBatch = 1000

// BadgerStore implements DocumentStore on an embedded BadgerDB.
// Records are stored as JSON under "hackathon:<identity key>" with an
// "id:<record id>" index pointing back to the identity key.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a BadgerDB at path. With inMemory set the
// path is ignored and nothing touches disk.
func OpenBadger(path string, inMemory bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	logging.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Opened BadgerDB document store")
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already open database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Backend implements DocumentStore.
func (s *BadgerStore) Backend() string { return "badger" }

// MaxBatchSize implements DocumentStore.
func (s *BadgerStore) MaxBatchSize() int { return badgerMaxBatch }

// BatchWrite implements DocumentStore. The whole batch is one transaction.
func (s *BadgerStore) BatchWrite(ctx context.Context, ops []WriteOp) (BatchResult, error) {
	if len(ops) > badgerMaxBatch {
		return BatchResult{}, fmt.Errorf("batch of %d exceeds limit %d", len(ops), badgerMaxBatch)
	}
	if err := ctx.Err(); err != nil {
		return BatchResult{}, err
	}

	start := time.Now()
	var res BatchResult
	err := s.db.Update(func(txn *badger.Txn) error {
		res = BatchResult{}
		for i := range ops {
			op := &ops[i]
			key := []byte(hackathonKeyPrefix + op.Key)

			_, err := txn.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				res.Created++
			case err != nil:
				return fmt.Errorf("lookup %s: %w", op.Key, err)
			default:
				res.Updated++
			}

			record := op.Record
			record.ID = models.RecordID(op.Key)
			data, err := json.Marshal(&record)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", op.Key, err)
			}
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set %s: %w", op.Key, err)
			}
			if err := txn.Set([]byte(idKeyPrefix+record.ID), []byte(op.Key)); err != nil {
				return fmt.Errorf("set id index for %s: %w", op.Key, err)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation(s.Backend(), "batch_write", time.Since(start))
	if err != nil {
		return BatchResult{}, err
	}
	return res, nil
}

// Query implements DocumentStore. Filtering happens after decode; the corpus
// is small enough that a full prefix scan is fine.
func (s *BadgerStore) Query(ctx context.Context, f models.Filter) ([]models.Hackathon, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(s.Backend(), "query", time.Since(start)) }()

	out := make([]models.Hackathon, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(hackathonKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var h models.Hackathon
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &h)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			if f.Matches(&h) {
				out = append(out, h)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query hackathons: %w", err)
	}

	sortByStart(out)
	return out, nil
}

// Get implements DocumentStore.
func (s *BadgerStore) Get(ctx context.Context, id string) (*models.Hackathon, error) {
	var h models.Hackathon
	err := s.db.View(func(txn *badger.Txn) error {
		idx, err := txn.Get([]byte(idKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get id index: %w", err)
		}
		identity, err := idx.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err := txn.Get([]byte(hackathonKeyPrefix + string(identity)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get hackathon: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &h)
		})
	})
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// Count implements DocumentStore.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(hackathonKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count hackathons: %w", err)
	}
	return n, nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// gcDiscardRatio is the fraction of a value log file that must be stale
// before it is rewritten.
const gcDiscardRatio = 0.5

// CollectGarbage rewrites value log files until badger reports nothing left
// to reclaim. It is a no-op for in-memory databases.
func (s *BadgerStore) CollectGarbage(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(gcDiscardRatio)
		switch {
		case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			return nil
		case err != nil:
			return fmt.Errorf("value log gc: %w", err)
		}
	}
}
