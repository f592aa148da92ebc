// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prem22k/Hack-Hunt/internal/config"
)

// ErrMiss is returned by Store.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Stats are the counters kept by in-process caches.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// Store is a byte-oriented cache shared by the memory and redis backends.
// Callers encode values themselves.
type Store interface {
	// Name identifies the backend in logs and metrics.
	Name() string

	// Get returns the value for key or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the backend TTL.
	Set(ctx context.Context, key string, value []byte) error

	// Clear drops every entry owned by this store.
	Clear(ctx context.Context) error

	Close() error
}

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.MaxEntries, cfg.TTL), nil
	case BackendRedis:
		return NewRedis(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.TTL,
		})
	case BackendNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Memory is an in-process Store backed by an LRU.
type Memory struct {
	lru *LRU[[]byte]
}

// NewMemory creates a memory store with the given bounds.
func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	return &Memory{lru: NewLRU[[]byte](maxEntries, ttl)}
}

func (m *Memory) Name() string { return BackendMemory }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.lru.Set(key, value)
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.lru.Clear()
	return nil
}

func (m *Memory) Close() error { return nil }

// Stats exposes the LRU counters.
func (m *Memory) Stats() Stats { return m.lru.Stats() }

// Noop never stores anything.
type Noop struct{}

func (Noop) Name() string                                { return BackendNone }
func (Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }
func (Noop) Set(context.Context, string, []byte) error   { return nil }
func (Noop) Clear(context.Context) error                 { return nil }
func (Noop) Close() error                                { return nil }
