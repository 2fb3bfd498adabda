// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

// Client-facing messages of the domain routes.
const (
	msgInternal         = "Internal server error"
	msgNotFound         = "Restaurant not found"
	msgInvalidID        = "Invalid restaurant id"
	msgInvalidJSON      = "Invalid JSON body"
	msgRouteNotFound    = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgTooManyRequests  = "Too many requests"
)

// maxRequestBodyBytes bounds POST bodies.
const maxRequestBodyBytes = 1 << 20
