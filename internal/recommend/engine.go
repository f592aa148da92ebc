// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/metrics"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/resilience"
)

const (
	// DefaultMaxResults is the number of recommendations returned.
	DefaultMaxResults = 3

	defaultBaseDelay = time.Second
	defaultMaxDelay  = 30 * time.Second
)

// Tier names the stage that produced a result.
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierLocal     Tier = "local"
)

// State is a position in the fallback chain.
type State int

const (
	StatePrimary State = iota
	StateSecondary
	StateLocal
	StateDone
)

func (s State) String() string {
	switch s {
	case StatePrimary:
		return "primary"
	case StateSecondary:
		return "secondary"
	case StateLocal:
		return "local"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome classifies one provider attempt.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRateLimited
	OutcomeQuotaExhausted
	OutcomeFailure
	OutcomeParseFailure
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeQuotaExhausted:
		return "quota_exhausted"
	case OutcomeFailure:
		return "failure"
	case OutcomeParseFailure:
		return "parse_failure"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// next is the transition function of the fallback chain. A rate-limited
// attempt stays on its tier while attempt < maxRetries; every other
// non-success outcome advances one tier. The local tier always finishes.
func next(state State, outcome Outcome, attempt, maxRetries int) State {
	if state >= StateLocal {
		return StateDone
	}
	switch outcome {
	case OutcomeSuccess:
		return StateDone
	case OutcomeRateLimited:
		if attempt < maxRetries {
			return state
		}
	}
	return state + 1
}

// Request is one ranking job. Candidates is the already filtered pool.
type Request struct {
	Skills     []string
	Location   string
	Candidates []models.Hackathon
}

// Result is the ranked output and the tier that produced it.
type Result struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Tier            Tier                    `json:"tier"`
	Candidates      int                     `json:"candidates"`
	Cached          bool                    `json:"cached"`
}

// TierConfig binds a provider to a tier. A nil Provider skips the tier.
type TierConfig struct {
	Provider   Provider
	MaxRetries int
}

// EngineConfig tunes prompts and backoff.
type EngineConfig struct {
	MaxResults       int
	DescriptionLimit int
	Temperature      float64
	BaseDelay        time.Duration
	MaxDelay         time.Duration
}

// Engine walks PRIMARY, SECONDARY, LOCAL until one tier yields a valid
// ranking. It never returns an error: the local scorer always answers.
type Engine struct {
	primary   TierConfig
	secondary TierConfig
	cfg       EngineConfig
	sleep     resilience.SleepFunc
	logger    zerolog.Logger
}

// NewEngine creates an engine. Zero config fields take defaults.
func NewEngine(cfg EngineConfig, primary, secondary TierConfig) *Engine {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.DescriptionLimit <= 0 {
		cfg.DescriptionLimit = DefaultDescriptionLimit
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = defaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = defaultMaxDelay
	}
	return &Engine{
		primary:   primary,
		secondary: secondary,
		cfg:       cfg,
		sleep:     resilience.Sleep,
		logger:    logging.WithComponent("recommend"),
	}
}

// Recommend ranks req.Candidates for the user.
func (e *Engine) Recommend(ctx context.Context, req Request) Result {
	start := time.Now()
	logger := e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("candidates", len(req.Candidates)).
		Logger()

	result := e.run(ctx, req, logger)
	result.Candidates = len(req.Candidates)
	if result.Recommendations == nil {
		result.Recommendations = []models.Recommendation{}
	}

	metrics.RecordRecommendation(string(result.Tier), result.Candidates, time.Since(start))
	logger.Info().
		Str("tier", string(result.Tier)).
		Int("results", len(result.Recommendations)).
		Dur("duration", time.Since(start)).
		Msg("Recommendation served")
	return result
}

func (e *Engine) run(ctx context.Context, req Request, logger zerolog.Logger) Result {
	if len(req.Candidates) == 0 {
		return Result{Tier: TierLocal}
	}

	prompt, err := BuildPrompt(req.Skills, req.Location, req.Candidates, e.cfg.DescriptionLimit, e.cfg.MaxResults, e.cfg.Temperature)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build prompt, using local scorer")
	}

	state, attempt := StatePrimary, 0
	if err != nil {
		state = StateLocal
	}

	for state != StateDone {
		if state == StateLocal {
			metrics.RecordTierOutcome(string(TierLocal), OutcomeSuccess.String())
			return Result{
				Recommendations: LocalScore(req.Skills, req.Candidates, e.cfg.MaxResults),
				Tier:            TierLocal,
			}
		}

		tier, tc := e.tier(state)
		tierLog := logger.With().Str("tier", string(tier)).Int("attempt", attempt).Logger()

		recs, outcome, retryAfter := e.attempt(ctx, tc, prompt, req.Candidates, tierLog)
		if outcome == OutcomeRateLimited && retryAfter > e.cfg.MaxDelay {
			// The provider asks for a longer wait than any backoff step allows.
			tierLog.Warn().Dur("retry_after", retryAfter).Dur("max_delay", e.cfg.MaxDelay).Msg("Retry-After exceeds max delay")
			outcome = OutcomeQuotaExhausted
		}
		metrics.RecordTierOutcome(string(tier), outcome.String())
		if outcome == OutcomeSuccess {
			return Result{Recommendations: recs, Tier: tier}
		}

		nextState := next(state, outcome, attempt, tc.MaxRetries)
		if nextState != state {
			if nextState != StateDone {
				tierLog.Warn().Str("outcome", outcome.String()).Str("next", nextState.String()).Msg("Falling back")
			}
			state, attempt = nextState, 0
			continue
		}

		delay := resilience.BackoffDelay(e.cfg.BaseDelay, attempt, e.cfg.MaxDelay)
		if retryAfter > delay {
			delay = retryAfter
		}
		metrics.RecordProviderRetry(tc.Provider.Name())
		tierLog.Warn().Dur("retry_delay", delay).Int("max_retries", tc.MaxRetries).Msg("Provider rate limited, retrying")
		if err := e.sleep(ctx, delay); err != nil {
			tierLog.Warn().Err(err).Msg("Backoff interrupted, using local scorer")
			state = StateLocal
			continue
		}
		attempt++
	}
	return Result{Tier: TierLocal}
}

func (e *Engine) tier(state State) (Tier, TierConfig) {
	if state == StatePrimary {
		return TierPrimary, e.primary
	}
	return TierSecondary, e.secondary
}

// attempt makes one provider call and classifies it.
func (e *Engine) attempt(ctx context.Context, tc TierConfig, prompt Prompt, candidates []models.Hackathon, logger zerolog.Logger) ([]models.Recommendation, Outcome, time.Duration) {
	if tc.Provider == nil {
		logger.Debug().Msg("Tier has no provider configured, skipping")
		return nil, OutcomeSkipped, 0
	}
	if err := ctx.Err(); err != nil {
		logger.Warn().Err(err).Msg("Context done before provider call")
		return nil, OutcomeFailure, 0
	}

	content, err := tc.Provider.Complete(ctx, prompt)
	if err != nil {
		outcome := classify(err)
		var retryAfter time.Duration
		if rl, ok := AsRateLimit(err); ok {
			retryAfter = rl.RetryAfter
		}
		logger.Warn().Err(err).Str("provider", tc.Provider.Name()).Str("outcome", outcome.String()).Msg("Provider call failed")
		return nil, outcome, retryAfter
	}

	recs, err := ParseRecommendations(content, candidates, e.cfg.MaxResults)
	if err != nil {
		logger.Warn().Err(err).Str("provider", tc.Provider.Name()).Str("reply_prefix", truncateRunes(content, 200)).Msg("Provider reply rejected")
		return nil, OutcomeParseFailure, 0
	}
	return recs, OutcomeSuccess, 0
}

func classify(err error) Outcome {
	if rl, ok := AsRateLimit(err); ok {
		if rl.DailyQuota {
			return OutcomeQuotaExhausted
		}
		return OutcomeRateLimited
	}
	if errors.Is(err, ErrUnparseable) {
		return OutcomeParseFailure
	}
	return OutcomeFailure
}
