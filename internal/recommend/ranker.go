// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package recommend

import (
	"sort"

	"github.com/tomtom215/forkcast/internal/models"
)

// ContentRanker orders candidates by TF-IDF cosine similarity between the
// query text and each candidate's profile. The vectorizer is fitted over
// the candidates of each call, so scores are only comparable within one
// call.
type ContentRanker struct{}

// Rank scores every candidate against target and returns them in descending
// score order. Equal scores keep their candidate order.
func (ContentRanker) Rank(target string, candidates []models.Restaurant) []Scored {
	if len(candidates) == 0 {
		return []Scored{}
	}

	docs := make([]string, len(candidates))
	for i := range candidates {
		docs[i] = candidates[i].Profile()
	}

	var vec TFIDF
	rows := vec.FitTransform(docs)
	q := vec.Transform(target)

	out := make([]Scored, len(candidates))
	for i := range candidates {
		out[i] = Scored{Restaurant: candidates[i], Score: Cosine(q, rows[i])}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
