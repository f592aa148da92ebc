// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/prem22k/Hack-Hunt/internal/config"
	"github.com/prem22k/Hack-Hunt/internal/logging"
	"github.com/prem22k/Hack-Hunt/internal/models"
	"github.com/prem22k/Hack-Hunt/internal/resilience"
)

// kaggleCompetition is the subset of the competitions list payload we use.
type kaggleCompetition struct {
	Ref              string `json:"ref"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	OrganizationName string `json:"organizationName"`
	EnabledDate      string `json:"enabledDate"`
	Deadline         string `json:"deadline"`
	Reward           string `json:"reward"`
}

// statusError is a non-2xx response.
type statusError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// KaggleSource lists featured competitions from the Kaggle API.
type KaggleSource struct {
	endpoint   string
	creds      CredentialSource
	client     *http.Client
	breaker    *resilience.Breaker
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	sleep      resilience.SleepFunc
	now        func() time.Time
	log        zerolog.Logger
}

// NewKaggleSource creates the Kaggle adapter. creds is consulted on every
// Fetch so credentials added at runtime are picked up.
func NewKaggleSource(cfg config.KaggleConfig, creds CredentialSource) *KaggleSource {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}
	return &KaggleSource{
		endpoint:   cfg.URL,
		creds:      creds,
		client:     &http.Client{Timeout: timeout},
		breaker:    resilience.NewBreaker("kaggle-api"),
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      resilience.Sleep,
		now:        time.Now,
		log:        logging.WithComponent("source.kaggle"),
	}
}

// Name implements Source.
func (k *KaggleSource) Name() models.Source { return models.SourceKaggle }

// Fetch implements Source. Without credentials it returns an empty slice and
// ErrCredentialsUnavailable.
func (k *KaggleSource) Fetch(ctx context.Context) ([]models.Hackathon, error) {
	creds, ok := k.creds.Lookup()
	if !ok {
		k.log.Warn().Msg("Kaggle credentials not found (checked config, env, ./kaggle.json and ~/.kaggle/kaggle.json), skipping")
		return []models.Hackathon{}, ErrCredentialsUnavailable
	}

	comps, err := k.list(ctx, creds)
	if err != nil {
		return []models.Hackathon{}, err
	}

	now := k.now()
	out := make([]models.Hackathon, 0, len(comps))
	for _, c := range comps {
		h := k.normalize(c, now)
		if !Finalize(&h) {
			k.log.Debug().Str("ref", c.Ref).Msg("Skipping competition without title or ref")
			continue
		}
		out = append(out, h)
	}
	k.log.Info().Int("count", len(out)).Msg("Fetched Kaggle competitions")
	return out, nil
}

// list calls the API, retrying 429 responses with exponential backoff that
// honours Retry-After.
func (k *KaggleSource) list(ctx context.Context, creds Credentials) ([]kaggleCompetition, error) {
	reqURL, err := k.requestURL()
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if err := k.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("kaggle rate limiter: %w", err)
		}
		comps, err := resilience.Cast[[]kaggleCompetition](k.breaker.Execute(func() (interface{}, error) {
			return k.do(ctx, reqURL, creds)
		}))
		if err == nil {
			return comps, nil
		}

		var se *statusError
		if !errors.As(err, &se) || se.Status != http.StatusTooManyRequests || attempt >= k.maxRetries {
			return nil, fmt.Errorf("kaggle competitions list: %w", err)
		}

		delay := resilience.BackoffDelay(k.retryDelay, attempt, 0)
		if se.RetryAfter > delay {
			delay = se.RetryAfter
		}
		k.log.Warn().Dur("retry_delay", delay).Int("attempt", attempt+1).Int("max_retries", k.maxRetries).
			Msg("Kaggle API rate limited (HTTP 429), retrying")
		if err := k.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (k *KaggleSource) requestURL() (string, error) {
	u, err := url.Parse(k.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid kaggle url: %w", err)
	}
	q := u.Query()
	q.Set("category", "featured")
	q.Set("sortBy", "earliestDeadline")
	q.Set("group", "general")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (k *KaggleSource) do(ctx context.Context, reqURL string, creds Credentials) ([]kaggleCompetition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+creds.Key)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{
			Status:     resp.StatusCode,
			Body:       resilience.ReadBodyForError(resp.Body),
			RetryAfter: resilience.ParseRetryAfter(resp.Header.Get("Retry-After"), k.now()),
		}
	}

	var comps []kaggleCompetition
	if err := json.NewDecoder(resp.Body).Decode(&comps); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return comps, nil
}

func (k *KaggleSource) normalize(c kaggleCompetition, now time.Time) models.Hackathon {
	organizer := strings.TrimSpace(c.OrganizationName)
	if organizer == "" {
		organizer = "Kaggle"
	}
	return models.Hackathon{
		Title:           c.Title,
		Organizer:       organizer,
		Description:     strings.TrimSpace(c.Description),
		StartDate:       parseTimestamp(c.EnabledDate, now),
		EndDate:         parseTimestamp(c.Deadline, now),
		Mode:            models.ModeOnline,
		IsPaid:          false,
		Skills:          []string{"Data Science", "Machine Learning"},
		RegistrationURL: competitionURL(c.Ref),
		Source:          models.SourceKaggle,
		Location:        "Virtual",
		Prize:           strings.TrimSpace(c.Reward),
	}
}

// competitionURL accepts either a bare slug or an absolute URL as ref.
func competitionURL(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	default:
		return "https://www.kaggle.com/c/" + strings.TrimPrefix(ref, "/")
	}
}

// parseTimestamp parses an API timestamp, degrading to now.
func parseTimestamp(s string, now time.Time) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}
