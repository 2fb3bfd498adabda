// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/forkcast/internal/recommend"
)

// RecommendRequest is the body of POST /recommend.
type RecommendRequest struct {
	Cuisine    string       `json:"cuisine" validate:"required,notblank,max=200"`
	PriceRange string       `json:"price_range,omitempty" validate:"omitempty,max=16"`
	Rating     *ratingValue `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// ratingValue accepts a JSON number or numeric text, since form-driven
// clients often send "4.0".
type ratingValue float64

func (v *ratingValue) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = ratingValue(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("rating must be a number")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("rating must be a number: %w", err)
	}
	*v = ratingValue(f)
	return nil
}

func (req *RecommendRequest) query() recommend.Query {
	q := recommend.Query{
		TargetCuisine: req.Cuisine,
		PriceFilter:   strings.TrimSpace(req.PriceRange),
	}
	if req.Rating != nil {
		v := float64(*req.Rating)
		q.MinRating = &v
	}
	return q
}

// Recommend handles POST /recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	out, err := h.engine.Recommend(ctx, req.query(), 0)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyQuery) {
			respondError(w, r, http.StatusBadRequest, "cuisine is required", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, msgInternal, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// Similar handles GET /similar/{id}?n=.
func (h *Handler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	cfg := h.engine.Config()
	n, err := parseN(r.URL.Query().Get("n"), cfg.DefaultSimilarN, cfg.MaxSimilarN)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	writeJSON(w, r, http.StatusOK, h.engine.Similar(ctx, id, n))
}

// parseN reads the optional neighbor count.
func parseN(raw string, def, maxN int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > maxN {
		return 0, fmt.Errorf("n must be an integer between 1 and %d", maxN)
	}
	return n, nil
}

// Restaurant handles GET /restaurant/{id}.
func (h *Handler) Restaurant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	rec, ok := h.engine.Restaurant(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, msgNotFound, nil)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}
