// Forkcast - Restaurant Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func TestLRU_GetAdd(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) hit")
	}

	c.Add("a", 10)
	if v, _ := c.Get("a"); v != 10 {
		t.Errorf("updated Get(a) = %v, want 10", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := NewLRU[string](2, time.Minute)
	c.Add("a", "A")
	c.Add("b", "B")
	c.Get("a") // b is now oldest
	c.Add("c", "C")

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s evicted", k)
		}
	}
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := NewLRU[int](10, time.Second)
	c.now = clock.now

	c.Add("a", 1)
	c.Add("b", 2)
	clock.t = clock.t.Add(500 * time.Millisecond)
	c.Add("c", 3)

	clock.t = clock.t.Add(700 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry returned")
	}
	if c.Len() != 2 {
		t.Errorf("Len() after expired Get = %d, want 2 (b and c)", c.Len())
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("Get(c) = %v, %v", v, ok)
	}
}

func TestLRU_Defaults(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("defaults not applied: %d %v", c.capacity, c.ttl)
	}
	c.Add("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%75)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory(8, time.Minute)

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("empty memory hit")
	}

	value := []byte("[1,2,3]")
	m.Set(ctx, "k", value)
	value[0] = 'X'

	got, ok := m.Get(ctx, "k")
	if !ok || string(got) != "[1,2,3]" {
		t.Fatalf("Get = %q, %v; stored value aliased caller slice", got, ok)
	}
	got[1] = 'Y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "[1,2,3]" {
		t.Errorf("returned slice aliases cache: %q", again)
	}
	if m.Name() != "memory" || m.Len() != 1 {
		t.Errorf("Name/Len = %s/%d", m.Name(), m.Len())
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	var s Store = Nop{}
	s.Set(context.Background(), "k", []byte("v"))
	if _, ok := s.Get(context.Background(), "k"); ok {
		t.Error("Nop hit")
	}
	if s.Name() != "none" {
		t.Errorf("Name() = %q", s.Name())
	}
}

func TestRedis_ErrorIsMiss(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := NewRedisFromClient(client, "forkcast:", 0, zerolog.Nop())
	if r.ttl != defaultTTL {
		t.Errorf("ttl = %v, want default", r.ttl)
	}

	ctx := context.Background()
	r.Set(ctx, "k", []byte("v"))
	if _, ok := r.Get(ctx, "k"); ok {
		t.Error("Get against unreachable redis hit")
	}
}
