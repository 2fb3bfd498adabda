// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package cache

import (
	"context"
	"time"

	"github.com/tomtom215/forkcast/internal/metrics"
)

// Store is a byte-valued response cache. Implementations never fail: a
// backend error is reported as a miss on Get and dropped on Set.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Name() string
}

// Nop disables caching.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Nop) Set(context.Context, string, []byte) {}

// Name returns "none".
func (Nop) Name() string { return "none" }

// Memory is an in-process Store backed by an LRU.
type Memory struct {
	lru *LRU[[]byte]
}

// NewMemory creates an in-process store holding up to size entries for ttl.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{lru: NewLRU[[]byte](size, ttl)}
}

// Get returns a copy of the cached value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.lru.Get(key)
	if !ok {
		metrics.RecordCacheMiss(m.Name())
		return nil, false
	}
	metrics.RecordCacheHit(m.Name())
	return append([]byte(nil), v...), true
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.lru.Add(key, append([]byte(nil), value...))
}

// Name returns "memory".
func (m *Memory) Name() string { return "memory" }

// Len returns the number of cached entries.
func (m *Memory) Len() int { return m.lru.Len() }

var (
	_ Store = Nop{}
	_ Store = (*Memory)(nil)
	_ Store = (*Redis)(nil)
)
