// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched, in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hackhunt/config.yaml",
}

// ConfigPathEnvVar overrides the config file search.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults, applied before file and env layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second, // recommend may wait on provider backoff
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		API: APIConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			RecommendTimeout:  45 * time.Second,
		},
		Store: StoreConfig{
			Backend:   "badger",
			Path:      "data/hackathons",
			InMemory:  false,
			Identity:  "slug",
			BatchSize: 450,
		},
		Ingest: IngestConfig{
			SchedulerEnabled: true,
			Schedule:         "0 */12 * * *",
			RunOnStartup:     false,
			SourceTimeout:    3 * time.Minute,
		},
		Sources: SourcesConfig{
			Browser: BrowserConfig{
				UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
				NoSandbox: true,
			},
			MLH: BrowserSourceConfig{
				Enabled:     true,
				URL:         "https://mlh.io/seasons/2025/events",
				NavTimeout:  60 * time.Second,
				WaitTimeout: 20 * time.Second,
			},
			Devpost: BrowserSourceConfig{
				Enabled:     true,
				URL:         "https://devpost.com/hackathons",
				NavTimeout:  60 * time.Second,
				WaitTimeout: 10 * time.Second,
			},
			Devfolio: BrowserSourceConfig{
				Enabled:     true,
				URL:         "https://devfolio.co/hackathons",
				NavTimeout:  60 * time.Second,
				WaitTimeout: 15 * time.Second,
			},
			Kaggle: KaggleConfig{
				Enabled:           true,
				URL:               "https://www.kaggle.com/api/v1/competitions/list",
				Timeout:           30 * time.Second,
				MaxRetries:        3,
				RetryDelay:        time.Second,
				RequestsPerMinute: 30,
			},
		},
		Recommend: RecommendConfig{
			Primary: ProviderConfig{
				Name:              "groq",
				URL:               "https://api.groq.com/openai/v1/chat/completions",
				Model:             "llama-3.3-70b-versatile",
				Temperature:       0.1,
				MaxRetries:        3,
				Timeout:           30 * time.Second,
				RequestsPerMinute: 30,
				QuotaMarkers:      []string{"tokens per day (TPD)"},
			},
			Secondary: ProviderConfig{
				Name:              "gemini",
				URL:               "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
				Model:             "gemini-2.0-flash",
				Temperature:       0.1,
				MaxRetries:        0,
				Timeout:           30 * time.Second,
				RequestsPerMinute: 15,
				QuotaMarkers:      []string{"per day", "PerDay"},
			},
			MaxCandidates:    30,
			OnlineQuota:      10,
			MaxResults:       3,
			DescriptionLimit: 300,
			BaseDelay:        time.Second,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			TTL:        10 * time.Minute,
			MaxEntries: 1000,
			RedisAddr:  "localhost:6379",
		},
		Events: EventsConfig{
			Topic: "ingest.completed",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// LoadWithKoanf loads configuration with clear precedence: ENV > file > defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first default
// path that exists, else "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"api.cors_origins",
	"recommend.primary.quota_markers",
	"recommend.secondary.quota_markers",
}

// processSliceFields splits comma-separated strings for known slice fields.
// YAML lists are left untouched.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variables (lowercased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot leak
// arbitrary keys into the config.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"port":                  "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// API
	"cors_origins":        "api.cors_origins",
	"rate_limit_requests": "api.rate_limit_requests",
	"rate_limit_window":   "api.rate_limit_window",
	"disable_rate_limit":  "api.rate_limit_disabled",
	"recommend_timeout":   "api.recommend_timeout",

	// Store
	"store_backend":    "store.backend",
	"store_path":       "store.path",
	"store_in_memory":  "store.in_memory",
	"store_identity":   "store.identity",
	"store_batch_size": "store.batch_size",

	// Ingest
	"ingest_scheduler_enabled": "ingest.scheduler_enabled",
	"ingest_schedule":          "ingest.schedule",
	"ingest_run_on_startup":    "ingest.run_on_startup",
	"ingest_source_timeout":    "ingest.source_timeout",

	// Sources
	"chrome_path":        "sources.browser.exec_path",
	"browser_user_agent": "sources.browser.user_agent",
	"browser_no_sandbox": "sources.browser.no_sandbox",
	"mlh_enabled":        "sources.mlh.enabled",
	"mlh_url":            "sources.mlh.url",
	"devpost_enabled":    "sources.devpost.enabled",
	"devpost_url":        "sources.devpost.url",
	"devfolio_enabled":   "sources.devfolio.enabled",
	"devfolio_url":       "sources.devfolio.url",
	"kaggle_enabled":     "sources.kaggle.enabled",
	"kaggle_url":         "sources.kaggle.url",
	"kaggle_username":    "sources.kaggle.username",
	"kaggle_key":         "sources.kaggle.key",
	"kaggle_timeout":     "sources.kaggle.timeout",
	"kaggle_rpm":         "sources.kaggle.requests_per_minute",

	// Recommendation providers
	"groq_api_key":                "recommend.primary.api_key",
	"groq_model":                  "recommend.primary.model",
	"recommend_primary_url":       "recommend.primary.url",
	"recommend_primary_retries":   "recommend.primary.max_retries",
	"recommend_primary_markers":   "recommend.primary.quota_markers",
	"gemini_api_key":              "recommend.secondary.api_key",
	"recommend_secondary_name":    "recommend.secondary.name",
	"recommend_secondary_url":     "recommend.secondary.url",
	"recommend_secondary_api_key": "recommend.secondary.api_key",
	"recommend_secondary_model":   "recommend.secondary.model",
	"recommend_secondary_retries": "recommend.secondary.max_retries",
	"recommend_secondary_markers": "recommend.secondary.quota_markers",
	"recommend_max_candidates":    "recommend.max_candidates",
	"recommend_online_quota":      "recommend.online_quota",
	"recommend_base_delay":        "recommend.base_delay",
	"recommend_description_limit": "recommend.description_limit",

	// Cache
	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",

	// Events
	"nats_url":     "events.nats_url",
	"events_topic": "events.topic",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
//
// Examples:
//   - GROQ_API_KEY -> recommend.primary.api_key
//   - KAGGLE_KEY -> sources.kaggle.key
//   - STORE_BACKEND -> store.backend
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
