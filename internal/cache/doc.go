// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

/*
Package cache provides the response cache used by the recommendation engine.

# Backends

  - Memory: in-process, backed by the generic LRU with TTL
  - Redis: shared across replicas (go-redis v9), keys namespaced by a prefix
  - Nop: caching disabled

All backends satisfy Store. A Store never returns an error: Redis failures
are logged at debug and treated as misses, so the engine falls back to
computing the answer.

# What is cached

The engine stores JSON-encoded restaurant ID lists keyed by catalog
snapshot version and normalized query. Values are re-hydrated from the
snapshot on read, so a refresh naturally invalidates old entries.

# LRU

LRU[V] is a doubly linked list plus hashmap giving O(1) Get, Add and
eviction. Expiration is lazy: an expired entry is dropped when Get finds it
or when capacity pressure evicts it.

	c := cache.NewLRU[[]byte](10000, 5*time.Minute)
	c.Add("k", data)
	if v, ok := c.Get("k"); ok {
	    // use v
	}

# Metrics

Hits and misses are exported as cache_hits_total and cache_misses_total,
labelled by backend.
*/
package cache
