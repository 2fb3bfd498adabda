// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package recommend implements the restaurant recommendation engine.
//
// # Components
//
// The engine combines two independent signals:
//
//   - Content similarity: Filter hard-filters the catalog on price tier and
//     minimum rating, then ContentRanker scores the remaining candidates by
//     TF-IDF cosine similarity between the requested cuisine text and each
//     candidate's "cuisine region price_range" profile.
//   - Item similarity: NeighborLookup finds restaurants near a given one in
//     the frozen feature matrix of a pre-trained artifact bundle (see the
//     artifact subpackage).
//
// # Determinism
//
// The TF-IDF vocabulary is fitted over the candidates of each call, so the
// same query against the same snapshot always yields the same order, and
// scores from different calls are not comparable. Ties keep catalog order.
// Neighbor ties are broken by lower matrix row.
//
// # Failure policy
//
// NeighborLookup returns a *LookupError whose Kind separates unknown ids,
// artifact mismatches and index faults. Engine.Similar logs the kind and
// collapses every failure to an empty result; callers that need the cause
// use Engine.SimilarErr.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), store, logger)
//	engine.SetNeighbors(recommend.NewNeighborLookup(bundle))
//
//	recs, err := engine.Recommend(ctx, recommend.Query{TargetCuisine: "italian"}, 0)
//	similar := engine.Similar(ctx, 42, 10)
//
// # Thread Safety
//
// Filter, ContentRanker and NeighborLookup hold no mutable state. The
// engine reads the catalog through an atomically swapped snapshot, so a
// catalog refresh never blocks or tears a request.
package recommend
