// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package models

import (
	"time"
)

// APIResponse is the envelope used by operational endpoints (health,
// readiness). The recommendation routes return bare JSON bodies instead, to
// stay compatible with the existing frontend.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"alive": true, "uptime": 12.5},
//	  "metadata": {"timestamp": "2026-10-14T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error with optional details.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorBody is the error shape of the recommendation routes.
type ErrorBody struct {
	Error string `json:"error"`
}

// StatusBody is returned by write endpoints such as click tracking.
type StatusBody struct {
	Status string `json:"status"`
}
