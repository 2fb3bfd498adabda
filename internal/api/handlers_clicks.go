// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"net/http"

	"github.com/tomtom215/forkcast/internal/models"
)

// ClickRequest is the body of POST /track-click.
type ClickRequest struct {
	ID *int64 `json:"id" validate:"required"`
}

// TrackClick handles POST /track-click.
func (h *Handler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	h.clicks.Track(r.Context(), *req.ID)
	writeJSON(w, r, http.StatusOK, models.StatusBody{Status: "success"})
}
