// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of ranked recommendation computations (cache misses)",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time spent filtering and ranking one query",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidates left after filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	SimilarLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similar_lookups_total",
			Help: "Total number of neighbor lookups by outcome",
		},
		[]string{"outcome"}, // "ok", "unknown_id", "artifact_mismatch", "index_fault", "artifact_unavailable"
	)

	// Catalog Metrics
	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog refresh attempts",
		},
		[]string{"result"},
	)

	CatalogRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_refresh_duration_seconds",
			Help:    "Duration of catalog refreshes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_restaurants",
			Help: "Number of restaurants in the current catalog snapshot",
		},
	)

	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_version",
			Help: "Version of the current catalog snapshot",
		},
	)

	CatalogLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_last_success_timestamp",
			Help: "Unix timestamp of the last successful catalog refresh",
		},
	)

	// Artifact Metrics
	ArtifactInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_info",
			Help: "Loaded neighbor artifact (value is always 1)",
		},
		[]string{"version"},
	)

	ArtifactRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_rows",
			Help: "Number of rows in the loaded neighbor artifact",
		},
	)

	ArtifactLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "artifact_load_duration_seconds",
			Help: "Duration of the last artifact load in seconds",
		},
	)

	ArtifactDrift = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "artifact_drift_rows",
			Help: "Rows by drift check outcome against the current catalog",
		},
		[]string{"outcome"}, // "checked", "missing", "unseen", "drifted", "unmapped"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"backend"},
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

	// Click Metrics
	RestaurantClicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "restaurant_clicks_total",
			Help: "Total number of tracked restaurant clicks",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommend records one filter-and-rank computation.
func RecordRecommend(candidates int, duration time.Duration) {
	RecommendRequests.Inc()
	RecommendDuration.Observe(duration.Seconds())
	RecommendCandidates.Observe(float64(candidates))
}

// RecordSimilar records a neighbor lookup outcome.
func RecordSimilar(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	SimilarLookups.WithLabelValues(outcome).Inc()
}

// RecordCatalogRefresh records a catalog refresh attempt.
func RecordCatalogRefresh(duration time.Duration, err error) {
	CatalogRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogRefreshes.WithLabelValues("failure").Inc()
		return
	}
	CatalogRefreshes.WithLabelValues("success").Inc()
	CatalogLastSuccess.Set(float64(time.Now().Unix()))
}

// UpdateCatalogSnapshot publishes the size and version of a new snapshot.
func UpdateCatalogSnapshot(size int, version uint64) {
	CatalogSize.Set(float64(size))
	CatalogVersion.Set(float64(version))
}

// RecordArtifactLoad publishes a successfully loaded artifact.
func RecordArtifactLoad(version string, rows int, duration time.Duration) {
	ArtifactInfo.Reset()
	ArtifactInfo.WithLabelValues(version).Set(1)
	ArtifactRows.Set(float64(rows))
	ArtifactLoadDuration.Set(duration.Seconds())
}

// UpdateArtifactDrift publishes the latest drift check.
func UpdateArtifactDrift(checked, missing, unseen, drifted, unmapped int) {
	ArtifactDrift.WithLabelValues("checked").Set(float64(checked))
	ArtifactDrift.WithLabelValues("missing").Set(float64(missing))
	ArtifactDrift.WithLabelValues("unseen").Set(float64(unseen))
	ArtifactDrift.WithLabelValues("drifted").Set(float64(drifted))
	ArtifactDrift.WithLabelValues("unmapped").Set(float64(unmapped))
}

// RecordCacheHit records a cache hit for backend.
func RecordCacheHit(backend string) {
	CacheHits.WithLabelValues(backend).Inc()
}

// RecordCacheMiss records a cache miss for backend.
func RecordCacheMiss(backend string) {
	CacheMisses.WithLabelValues(backend).Inc()
}

// RecordClick records a tracked restaurant click.
func RecordClick() {
	RestaurantClicks.Inc()
}
