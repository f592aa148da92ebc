// Hack-Hunt - Hackathon Aggregation and Skill-Based Recommendation
// Copyright 2026 Prem (prem22k)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/prem22k/Hack-Hunt

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion Metrics
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_source_runs_total",
			Help: "Total number of source pipeline runs",
		},
		[]string{"source", "result"}, // result: "success", "failure", "skipped"
	)

	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_records_total",
			Help: "Records handled per source by outcome",
		},
		[]string{"source", "outcome"}, // outcome: "fetched", "created", "updated", "failed"
	)

	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_source_duration_seconds",
			Help:    "Duration of one source pipeline (fetch and upsert)",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 180, 300}, // browser sources take tens of seconds
		},
		[]string{"source"},
	)

	IngestLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per source",
		},
		[]string{"source"},
	)

	IngestInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_run_in_progress",
			Help: "1 while an ingestion run is active",
		},
	)

	// Store Metrics
	StoreBatchWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_batch_writes_total",
			Help: "Total number of batch writes issued by the upserter",
		},
		[]string{"backend", "result"},
	)

	StoreBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "store_batch_size",
			Help:    "Number of records per batch write",
			Buckets: []float64{1, 10, 50, 100, 250, 450, 1000},
		},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	// Recommendation Metrics
	RecommendTierOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_tier_outcomes_total",
			Help: "Outcome of each recommendation tier attempt",
		},
		[]string{"tier", "outcome"}, // outcome: "success", "rate_limited", "quota_exhausted", "failure", "skipped"
	)

	RecommendServedBy = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_served_total",
			Help: "Recommendation responses by the tier that produced them",
		},
		[]string{"tier"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Candidate set size after pre-filtering",
			Buckets: []float64{0, 1, 5, 10, 15, 20, 25, 30},
		},
	)

	ProviderRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_provider_retries_total",
			Help: "Retries caused by provider rate limiting",
		},
		[]string{"provider"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_provider_request_duration_seconds",
			Help:    "Duration of a single provider completion call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "status_code"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of cache flushes",
		},
		[]string{"cache_type"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Events published to the bus",
		},
		[]string{"topic", "transport", "result"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordIngestSource records the outcome of one source pipeline.
func RecordIngestSource(source string, fetched, created, updated, failed int, duration time.Duration, err error) {
	IngestDuration.WithLabelValues(source).Observe(duration.Seconds())
	IngestRecords.WithLabelValues(source, "fetched").Add(float64(fetched))
	IngestRecords.WithLabelValues(source, "created").Add(float64(created))
	IngestRecords.WithLabelValues(source, "updated").Add(float64(updated))
	IngestRecords.WithLabelValues(source, "failed").Add(float64(failed))
	if err != nil {
		IngestRunsTotal.WithLabelValues(source, "failure").Inc()
		return
	}
	IngestRunsTotal.WithLabelValues(source, "success").Inc()
	IngestLastSuccess.WithLabelValues(source).Set(float64(time.Now().Unix()))
}

// RecordIngestSkipped records a source that produced nothing because it was unavailable.
func RecordIngestSkipped(source string) {
	IngestRunsTotal.WithLabelValues(source, "skipped").Inc()
}

// SetIngestInProgress flips the in-progress gauge.
func SetIngestInProgress(active bool) {
	if active {
		IngestInProgress.Set(1)
	} else {
		IngestInProgress.Set(0)
	}
}

// RecordBatchWrite records one upserter batch.
func RecordBatchWrite(backend string, size int, err error) {
	StoreBatchSize.Observe(float64(size))
	if err != nil {
		StoreBatchWrites.WithLabelValues(backend, "failure").Inc()
		return
	}
	StoreBatchWrites.WithLabelValues(backend, "success").Inc()
}

// RecordStoreOperation records the latency of a store call.
func RecordStoreOperation(backend, operation string, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordTierOutcome records one attempt of a recommendation tier.
func RecordTierOutcome(tier, outcome string) {
	RecommendTierOutcomes.WithLabelValues(tier, outcome).Inc()
}

// RecordRecommendation records a served recommendation response.
func RecordRecommendation(tier string, candidates int, duration time.Duration) {
	RecommendServedBy.WithLabelValues(tier).Inc()
	RecommendCandidates.Observe(float64(candidates))
	RecommendDuration.Observe(duration.Seconds())
}

// RecordProviderRetry records a rate-limit retry against a provider.
func RecordProviderRetry(provider string) {
	ProviderRetries.WithLabelValues(provider).Inc()
}

// RecordProviderRequest records a single provider call. statusCode is 0 when
// no response was received.
func RecordProviderRequest(provider string, statusCode int, duration time.Duration) {
	code := "none"
	if statusCode > 0 {
		code = strconv.Itoa(statusCode)
	}
	ProviderRequestDuration.WithLabelValues(provider, code).Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCacheInvalidation records a full flush of the named cache.
func RecordCacheInvalidation(cacheType string) {
	CacheInvalidations.WithLabelValues(cacheType).Inc()
}

// RecordEventPublished records a publish attempt on the event bus.
func RecordEventPublished(topic, transport string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EventsPublished.WithLabelValues(topic, transport, result).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
