// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"time"

	"github.com/tomtom215/forkcast/internal/clicks"
	"github.com/tomtom215/forkcast/internal/recommend"
)

// Options tune handler behavior.
type Options struct {
	// RequestTimeout bounds the work of one domain request. Default: 10s.
	RequestTimeout time.Duration

	// ArtifactRequired makes readiness wait for the neighbor bundle.
	ArtifactRequired bool
}

// Handler serves the Forkcast routes.
type Handler struct {
	engine  *recommend.Engine
	catalog recommend.SnapshotSource
	clicks  *clicks.Tracker

	requestTimeout   time.Duration
	artifactRequired bool
	startTime        time.Time
}

// NewHandler creates a handler over engine. src must be the same snapshot
// source the engine reads.
func NewHandler(engine *recommend.Engine, src recommend.SnapshotSource, tracker *clicks.Tracker, opts Options) *Handler {
	if tracker == nil {
		tracker = clicks.NewTracker()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Handler{
		engine:           engine,
		catalog:          src,
		clicks:           tracker,
		requestTimeout:   opts.RequestTimeout,
		artifactRequired: opts.ArtifactRequired,
		startTime:        time.Now(),
	}
}
