package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"connect-backend/internal/user/domain"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	hit, err := c.Get(ctx, "id-1")
	if err != nil || hit != nil {
		t.Fatalf("empty cache should miss, got %v %v", hit, err)
	}

	user := &domain.User{ID: "id-1", Username: "alice"}
	if err := c.Set(ctx, "id-1", user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	hit, err = c.Get(ctx, "id-1")
	if err != nil || hit == nil || hit.Username != "alice" {
		t.Fatalf("Get after Set: %v %v", hit, err)
	}

	if err := c.Invalidate(ctx, "id-1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	hit, err = c.Get(ctx, "id-1")
	if err != nil || hit != nil {
		t.Fatalf("Get after Invalidate should miss, got %v %v", hit, err)
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache(10 * time.Millisecond)
	ctx := context.Background()

	if err := c.Set(ctx, "id-1", &domain.User{ID: "id-1"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	hit, err := c.Get(ctx, "id-1")
	if err != nil || hit != nil {
		t.Fatalf("expired entry should miss, got %v %v", hit, err)
	}
}

func TestMemoryCacheDropsExpiredEntries(t *testing.T) {
	c := NewMemoryCache(5 * time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("id-%d", i)
		if err := c.Set(ctx, id, &domain.User{ID: id}); err != nil {
			t.Fatalf("Set %s: %v", id, err)
		}
	}
	time.Sleep(10 * time.Millisecond)

	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("id-%d", i)
		if hit, err := c.Get(ctx, id); err != nil || hit != nil {
			t.Fatalf("expired entry %s should miss, got %v %v", id, hit, err)
		}
	}

	// Reading an expired entry must release it, not just skip it.
	mc := c.(*memoryCache)
	mc.mu.RLock()
	held := len(mc.entries)
	mc.mu.RUnlock()
	if held != 0 {
		t.Fatalf("expired entries still held: %d", held)
	}
}

func TestMemoryCacheDetachesEdgeSets(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	ctx := context.Background()

	user := &domain.User{ID: "id-1", Following: domain.IDSet{"id-2"}}
	if err := c.Set(ctx, "id-1", user); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Mutating the original must not leak into the cached copy.
	user.Following = user.Following.Remove("id-2")

	hit, err := c.Get(ctx, "id-1")
	if err != nil || hit == nil {
		t.Fatalf("Get: %v %v", hit, err)
	}
	if !hit.Following.Contains("id-2") {
		t.Fatalf("cached entry aliases the caller's slice")
	}

	// And mutating the returned copy must not corrupt the cache.
	hit.Following = hit.Following.Remove("id-2")
	again, _ := c.Get(ctx, "id-1")
	if again == nil || !again.Following.Contains("id-2") {
		t.Fatalf("returned entry aliases the cached value")
	}
}
