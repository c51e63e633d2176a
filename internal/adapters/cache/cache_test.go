package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := NewCache[string, int](4)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Error("Get() on empty cache reported a hit")
	}

	c.Set(ctx, "a", 1)
	v, ok := c.Get(ctx, "a")
	if !ok || v != 1 {
		t.Errorf("Get() = %d, %v, want 1, true", v, ok)
	}
}

func TestCache_GetOrSet_Concurrent(t *testing.T) {
	c := NewCache[string, *int](0)
	ctx := context.Background()

	var created atomic.Int32
	var wg sync.WaitGroup
	results := make([]*int, 50)

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetOrSet(ctx, "client", func() *int {
				created.Add(1)
				return new(int)
			})
		}(i)
	}
	wg.Wait()

	if got := created.Load(); got != 1 {
		t.Errorf("GetOrSet() constructed %d values, want 1", got)
	}
	for i, r := range results {
		if r != results[0] {
			t.Fatalf("GetOrSet() result %d differs from result 0", i)
		}
	}
}

func TestCache_DeleteFunc(t *testing.T) {
	c := NewCache[string, int](0)
	ctx := context.Background()

	c.Set(ctx, "keep-1", 1)
	c.Set(ctx, "drop-1", 2)
	c.Set(ctx, "drop-2", 3)

	removed := c.DeleteFunc(ctx, func(k string, _ int) bool {
		return strings.HasPrefix(k, "drop")
	})

	if removed != 2 {
		t.Errorf("DeleteFunc() removed %d, want 2", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if _, ok := c.Get(ctx, "keep-1"); !ok {
		t.Error("DeleteFunc() removed an entry it should have kept")
	}
}
