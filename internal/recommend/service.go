// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/cache"
	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/events"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
)

// Corpus is the read side of the document store.
type Corpus interface {
	Query(ctx context.Context, filter models.Filter) ([]models.Hackathon, error)
}

// Ranker ranks an already filtered pool. *Engine is the production Ranker.
type Ranker interface {
	Recommend(ctx context.Context, req Request) Result
}

// Input is a recommendation request as received from a client.
type Input struct {
	Skills   []string
	Location string
	Filters  models.Filter

	// Hackathons, when non-empty, replaces the stored corpus as the pool.
	Hackathons []models.Hackathon
}

// Service selects candidates, consults the cache and delegates ranking.
type Service struct {
	corpus Corpus
	filter CandidateFilter
	ranker Ranker
	cache  cache.Store
	logger zerolog.Logger
}

// NewService wires a service. A nil store disables caching.
func NewService(corpus Corpus, filter CandidateFilter, ranker Ranker, store cache.Store) *Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &Service{
		corpus: corpus,
		filter: filter,
		ranker: ranker,
		cache:  store,
		logger: logging.WithComponent("recommend.service"),
	}
}

// NewServiceFromConfig builds the provider chain from configuration.
// Providers without an API key are left out of the chain.
func NewServiceFromConfig(cfg config.RecommendConfig, corpus Corpus, store cache.Store) *Service {
	engine := NewEngine(EngineConfig{
		MaxResults:       cfg.MaxResults,
		DescriptionLimit: cfg.DescriptionLimit,
		Temperature:      cfg.Primary.Temperature,
		BaseDelay:        cfg.BaseDelay,
	}, tierFromConfig(cfg.Primary), tierFromConfig(cfg.Secondary))

	return NewService(corpus, CandidateFilter{
		MaxCandidates: cfg.MaxCandidates,
		OnlineQuota:   cfg.OnlineQuota,
	}, engine, store)
}

func tierFromConfig(pc config.ProviderConfig) TierConfig {
	if pc.APIKey == "" {
		logging.Warn().Str("provider", pc.Name).Msg("No API key configured, tier disabled")
		return TierConfig{}
	}
	return TierConfig{Provider: NewChatClient(pc), MaxRetries: pc.MaxRetries}
}

// Recommend returns ranked recommendations. The only error is a failure to
// read the stored corpus; provider failures degrade to the local scorer.
func (s *Service) Recommend(ctx context.Context, in Input) (Result, error) {
	pool := in.Hackathons
	cacheable := len(pool) == 0

	var key string
	if cacheable {
		key = cacheKey(in)
		if res, ok := s.lookup(ctx, key); ok {
			return res, nil
		}

		var err error
		pool, err = s.corpus.Query(ctx, models.Filter{})
		if err != nil {
			return Result{}, fmt.Errorf("failed to load hackathons: %w", err)
		}
	}

	candidates := s.filter.Select(pool, in.Location, in.Filters)
	res := s.ranker.Recommend(ctx, Request{
		Skills:     in.Skills,
		Location:   in.Location,
		Candidates: candidates,
	})

	// Local results are cheap to recompute and may hide a transient outage.
	if cacheable && res.Tier != TierLocal {
		s.store(ctx, key, res)
	}
	return res, nil
}

func (s *Service) lookup(ctx context.Context, key string) (Result, bool) {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn().Err(err).Msg("Cache read failed")
		}
		metrics.RecordCacheLookup(s.cache.Name(), false)
		return Result{}, false
	}

	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		s.logger.Warn().Err(err).Msg("Discarding undecodable cache entry")
		metrics.RecordCacheLookup(s.cache.Name(), false)
		return Result{}, false
	}
	metrics.RecordCacheLookup(s.cache.Name(), true)
	res.Cached = true
	return res, true
}

func (s *Service) store(ctx context.Context, key string, res Result) {
	data, err := json.Marshal(res)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode cache entry")
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warn().Err(err).Msg("Cache write failed")
	}
}

// Invalidate drops every cached result.
func (s *Service) Invalidate(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear recommendation cache: %w", err)
	}
	metrics.RecordCacheInvalidation(s.cache.Name())
	return nil
}

// HandleIngestCompleted is an events.Handler that invalidates the cache when
// a run created or updated records.
func (s *Service) HandleIngestCompleted(ctx context.Context, e *events.IngestCompleted) error {
	if !e.Changed() {
		s.logger.Debug().Str("run_id", e.RunID).Msg("Ingestion changed nothing, keeping cache")
		return nil
	}
	if err := s.Invalidate(ctx); err != nil {
		return err
	}
	s.logger.Info().Str("run_id", e.RunID).Msg("Recommendation cache invalidated")
	return nil
}

// cacheKey is stable under skill order, case and surrounding whitespace.
func cacheKey(in Input) string {
	skills := make([]string, 0, len(in.Skills))
	for _, sk := range in.Skills {
		if sk = strings.ToLower(strings.TrimSpace(sk)); sk != "" {
			skills = append(skills, sk)
		}
	}
	sort.Strings(skills)

	filterSkills := make([]string, 0, len(in.Filters.Skills))
	for _, sk := range in.Filters.Skills {
		filterSkills = append(filterSkills, strings.ToLower(strings.TrimSpace(sk)))
	}
	sort.Strings(filterSkills)
	filters := in.Filters
	filters.Skills = filterSkills
	filters.Location = strings.ToLower(strings.TrimSpace(filters.Location))

	payload, _ := json.Marshal(struct {
		Skills   []string      `json:"s"`
		Location string        `json:"l"`
		Filters  models.Filter `json:"f"`
	}{skills, strings.ToLower(strings.TrimSpace(in.Location)), filters})

	sum := sha256.Sum256(payload)
	return "recommend:" + hex.EncodeToString(sum[:])
}
