// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are package-level variables registered with the default
registry through promauto. Call sites use the Record* and Update* helpers
instead of touching collectors directly.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)

Recommendation Metrics:
  - recommend_requests_total: Ranking computations (counter)
  - recommend_duration_seconds: Filter and rank latency (histogram)
  - recommend_candidates: Candidates after filtering (histogram)
  - similar_lookups_total: Neighbor lookups (counter)
    Labels: outcome

Catalog Metrics:
  - catalog_refreshes_total: Refresh attempts (counter)
    Labels: result
  - catalog_refresh_duration_seconds (histogram)
  - catalog_restaurants, catalog_snapshot_version (gauges)
  - catalog_last_success_timestamp (gauge)

Artifact Metrics:
  - artifact_info: Loaded artifact version (gauge)
  - artifact_rows, artifact_load_duration_seconds (gauges)
  - artifact_drift_rows: Drift check result (gauge)
    Labels: outcome

Cache Metrics:
  - cache_hits_total, cache_misses_total (counters)
    Labels: backend

Circuit Breaker Metrics:
  - circuit_breaker_state (gauge, 0=closed 1=half-open 2=open)
  - circuit_breaker_requests_total (counter)
  - circuit_breaker_consecutive_failures (gauge)
  - circuit_breaker_state_transitions_total (counter)

Click Metrics:
  - restaurant_clicks_total (counter)
*/
package metrics
