// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package middleware provides HTTP middleware shared by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation and logging context IDs
  - PrometheusMetrics: request count and latency per chi route pattern
  - Compression: gzip responses using klauspost/compress

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Compression)
	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Post("/recommend", h.Recommend)
	})

PrometheusMetrics must run inside the router so the route pattern is known
when the request completes.
*/
package middleware
