// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import "github.com/tomtom215/forkcast/internal/models"

// Filter returns the restaurants that match price (when non-empty) and have
// a rating of at least minRating, in their original order. The result is a
// fresh slice and is never nil.
func Filter(restaurants []models.Restaurant, price string, minRating float64) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurants))
	for i := range restaurants {
		if matches(&restaurants[i], price, minRating) {
			out = append(out, restaurants[i])
		}
	}
	return out
}

func matches(r *models.Restaurant, price string, minRating float64) bool {
	if price != "" && r.PriceRange != price {
		return false
	}
	return r.Rating >= minRating
}
