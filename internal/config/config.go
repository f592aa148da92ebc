// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete application configuration.
//
// Values are layered by LoadWithKoanf: struct defaults, then an optional YAML
// file, then environment variables.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	API        APIConfig        `koanf:"api"`
	Store      StoreConfig      `koanf:"store"`
	Ingest     IngestConfig     `koanf:"ingest"`
	Sources    SourcesConfig    `koanf:"sources"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Cache      CacheConfig      `koanf:"cache"`
	Events     EventsConfig     `koanf:"events"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// APIConfig configures middleware for the HTTP API.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	RecommendTimeout  time.Duration `koanf:"recommend_timeout"`
}

// StoreConfig selects and tunes the document store.
type StoreConfig struct {
	// Backend is badger (default) or duckdb.
	Backend string `koanf:"backend"`

	// Path is the badger directory or the duckdb file.
	Path string `koanf:"path"`

	// InMemory keeps all data in memory. Useful for demos and tests.
	InMemory bool `koanf:"in_memory"`

	// Identity is slug (source + title) or dated (source + title + start date).
	Identity string `koanf:"identity"`

	// BatchSize caps writes per atomic batch.
	BatchSize int `koanf:"batch_size"`
}

// IngestConfig configures the orchestrator and its cron schedule.
type IngestConfig struct {
	SchedulerEnabled bool          `koanf:"scheduler_enabled"`
	Schedule         string        `koanf:"schedule"`
	RunOnStartup     bool          `koanf:"run_on_startup"`
	SourceTimeout    time.Duration `koanf:"source_timeout"`
}

// SourcesConfig configures each source adapter.
type SourcesConfig struct {
	Browser  BrowserConfig       `koanf:"browser"`
	MLH      BrowserSourceConfig `koanf:"mlh"`
	Devpost  BrowserSourceConfig `koanf:"devpost"`
	Devfolio BrowserSourceConfig `koanf:"devfolio"`
	Kaggle   KaggleConfig        `koanf:"kaggle"`
}

// BrowserConfig configures the headless browser shared by scraping adapters.
type BrowserConfig struct {
	ExecPath  string `koanf:"exec_path"`
	UserAgent string `koanf:"user_agent"`
	NoSandbox bool   `koanf:"no_sandbox"`
}

// BrowserSourceConfig configures one browser-rendered source.
type BrowserSourceConfig struct {
	Enabled     bool          `koanf:"enabled"`
	URL         string        `koanf:"url"`
	NavTimeout  time.Duration `koanf:"nav_timeout"`
	WaitTimeout time.Duration `koanf:"wait_timeout"`
}

// KaggleConfig configures the Kaggle competitions API adapter.
// Username and Key are the first step of the credential chain; kaggle.json
// files are consulted when they are empty.
type KaggleConfig struct {
	Enabled    bool          `koanf:"enabled"`
	URL        string        `koanf:"url"`
	Username   string        `koanf:"username"`
	Key        string        `koanf:"key"`
	Timeout    time.Duration `koanf:"timeout"`
	MaxRetries int           `koanf:"max_retries"`
	RetryDelay time.Duration `koanf:"retry_delay"`

	// RequestsPerMinute paces API calls, retries included. Zero disables pacing.
	RequestsPerMinute int `koanf:"requests_per_minute"`
}

// RecommendConfig configures the candidate filter and provider chain.
type RecommendConfig struct {
	Primary          ProviderConfig `koanf:"primary"`
	Secondary        ProviderConfig `koanf:"secondary"`
	MaxCandidates    int            `koanf:"max_candidates"`
	OnlineQuota      int            `koanf:"online_quota"`
	MaxResults       int            `koanf:"max_results"`
	DescriptionLimit int            `koanf:"description_limit"`
	BaseDelay        time.Duration  `koanf:"base_delay"`
}

// ProviderConfig configures one OpenAI-compatible chat completions provider.
// A provider without an APIKey is skipped.
type ProviderConfig struct {
	Name              string        `koanf:"name"`
	URL               string        `koanf:"url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	Temperature       float64       `koanf:"temperature"`
	MaxRetries        int           `koanf:"max_retries"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
	QuotaMarkers      []string      `koanf:"quota_markers"`
}

// CacheConfig configures the recommendation cache.
type CacheConfig struct {
	// Backend is memory (default), redis or none.
	Backend       string        `koanf:"backend"`
	TTL           time.Duration `koanf:"ttl"`
	MaxEntries    int           `koanf:"max_entries"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

// EventsConfig configures the ingestion event bus. With an empty NATSURL the
// bus is in-process only.
type EventsConfig struct {
	NATSURL string `koanf:"nats_url"`
	Topic   string `koanf:"topic"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SupervisorConfig tunes the suture supervisor tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s *ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
