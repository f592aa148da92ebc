// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimitDisabled {
		return nil
	}
	if c.API.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.API.RateLimitRequests)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

var validStoreBackends = map[string]bool{"badger": true, "duckdb": true}

var validIdentityStrategies = map[string]bool{"slug": true, "dated": true}

func (c *Config) validateStore() error {
	if !validStoreBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of: badger, duckdb")
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	if !validIdentityStrategies[c.Store.Identity] {
		return fmt.Errorf("STORE_IDENTITY must be one of: slug, dated")
	}
	if c.Store.BatchSize <= 0 {
		return fmt.Errorf("STORE_BATCH_SIZE must be positive, got %d", c.Store.BatchSize)
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.SchedulerEnabled {
		// Full parsing happens in the scheduler; only the shape is checked here.
		if n := len(strings.Fields(c.Ingest.Schedule)); n != 5 {
			return fmt.Errorf("INGEST_SCHEDULE must have 5 fields, got %d", n)
		}
	}
	if c.Ingest.SourceTimeout <= 0 {
		return fmt.Errorf("INGEST_SOURCE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSources() error {
	browserSources := map[string]BrowserSourceConfig{
		"MLH_URL":      c.Sources.MLH,
		"DEVPOST_URL":  c.Sources.Devpost,
		"DEVFOLIO_URL": c.Sources.Devfolio,
	}
	for field, src := range browserSources {
		if !src.Enabled {
			continue
		}
		if err := validateHTTPURL(src.URL, field); err != nil {
			return err
		}
	}
	if c.Sources.Kaggle.Enabled {
		if err := validateHTTPURL(c.Sources.Kaggle.URL, "KAGGLE_URL"); err != nil {
			return err
		}
		if c.Sources.Kaggle.MaxRetries < 0 {
			return fmt.Errorf("sources.kaggle.max_retries must not be negative")
		}
		if c.Sources.Kaggle.RequestsPerMinute < 0 {
			return fmt.Errorf("sources.kaggle.requests_per_minute must not be negative")
		}
	}
	return nil
}

func (c *Config) validateRecommend() error {
	for _, p := range []ProviderConfig{c.Recommend.Primary, c.Recommend.Secondary} {
		if p.APIKey == "" {
			continue
		}
		if err := validateHTTPURL(p.URL, "recommend."+p.Name+".url"); err != nil {
			return err
		}
		if p.Model == "" {
			return fmt.Errorf("recommend.%s.model is required when an API key is set", p.Name)
		}
		if p.MaxRetries < 0 {
			return fmt.Errorf("recommend.%s.max_retries must not be negative", p.Name)
		}
	}
	r := c.Recommend
	if r.MaxCandidates <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be positive, got %d", r.MaxCandidates)
	}
	if r.OnlineQuota < 0 {
		return fmt.Errorf("RECOMMEND_ONLINE_QUOTA must not be negative")
	}
	if r.MaxResults <= 0 {
		return fmt.Errorf("recommend.max_results must be positive")
	}
	if r.BaseDelay < 0 {
		return fmt.Errorf("RECOMMEND_BASE_DELAY must not be negative")
	}
	return nil
}

var validCacheBackends = map[string]bool{"memory": true, "redis": true, "none": true}

func (c *Config) validateCache() error {
	if !validCacheBackends[c.Cache.Backend] {
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, none")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
	}
	if c.Cache.Backend != "none" && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateEvents() error {
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required")
	}
	if c.Events.NATSURL == "" {
		return nil
	}
	u, err := url.Parse(c.Events.NATSURL)
	if err != nil {
		return fmt.Errorf("NATS_URL failed to parse: %w", err)
	}
	switch u.Scheme {
	case "nats", "tls", "ws", "wss":
	default:
		return fmt.Errorf("NATS_URL scheme must be nats, tls, ws or wss, got: %s", u.Scheme)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{"json": true, "console": true}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks for an absolute http(s) URL with a host.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	return nil
}
