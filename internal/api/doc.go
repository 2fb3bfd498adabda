// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package api provides the HTTP surface of Forkcast using the chi router.

# Routes

	POST /recommend         ranked records for {cuisine, price_range?, rating?}
	GET  /similar/{id}      neighbor records, ?n= in 1..similar.max_n
	GET  /restaurant/{id}   one catalog record
	POST /track-click       log a click on {id}
	GET  /health/live       liveness probe
	GET  /health/ready      readiness probe (503 until the catalog is loaded)
	GET  /metrics           Prometheus exposition

Domain routes answer with bare JSON arrays and objects and report errors as
{"error": "..."}, which is the contract existing frontends rely on. Health
routes use the models.APIResponse envelope.

# Middleware

Applied in order: request ID with logging context, chi RealIP, chi
Recoverer and go-chi/cors on every route; then per-route Prometheus timing,
go-chi/httprate per-IP limiting and gzip compression on the domain routes.
*/
package api
