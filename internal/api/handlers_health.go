// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK while the process is running, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondEnvelope(w, r, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK once a catalog snapshot is loaded and, when the artifact is
// required, the neighbor bundle too. Returns 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Current()
	catalogLoaded := snap != nil
	neighbors := h.engine.NeighborsAvailable()
	ready := catalogLoaded && (neighbors || !h.artifactRequired)

	data := map[string]interface{}{
		"catalog_loaded":      catalogLoaded,
		"neighbors_available": neighbors,
		"ready_to_serve":      ready,
		"uptime":              time.Since(h.startTime).Seconds(),
	}
	if catalogLoaded {
		data["catalog_version"] = snap.Version()
		data["catalog_size"] = snap.Len()
	}

	if !ready {
		respondEnvelope(w, r, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "not_ready",
			Data:   data,
			Error: &models.APIError{
				Code:    "NOT_READY",
				Message: "Service is not ready",
			},
		})
		return
	}

	respondEnvelope(w, r, http.StatusOK, &models.APIResponse{
		Status: "ready",
		Data:   data,
	})
}
