// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package clicks records which restaurants users open. Clicks are logged and
// counted only; nothing reads them back into ranking.
package clicks

import (
	"context"

	"github.com/tomtom215/forkcast/internal/logging"
	"github.com/tomtom215/forkcast/internal/metrics"
)

// Tracker records click events.
type Tracker struct{}

// NewTracker creates a tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track logs a click on restaurantID with the request's correlation fields
// and increments restaurant_clicks_total.
func (t *Tracker) Track(ctx context.Context, restaurantID int64) {
	logging.Ctx(ctx).Info().
		Str("event", "click").
		Int64("restaurant_id", restaurantID).
		Msg("restaurant clicked")
	metrics.RecordClick()
}
