package cache

import (
	"context"
	"sync"
	"time"

	"connect-backend/internal/user/domain"
)

// UserCache sits in front of the user repository for reads. Get returns
// (nil, nil) on a miss. Every mutation of a user record must call
// Invalidate for that id before the operation is considered complete.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, id string, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

type memoryEntry struct {
	user      domain.User
	expiresAt time.Time
}

// memoryCache is an in-process UserCache with per-entry TTL. Used when no
// Redis address is configured, and in tests.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryCache creates a new instance of memoryCache
func NewMemoryCache(ttl time.Duration) UserCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *memoryCache) Get(_ context.Context, id string) (*domain.User, error) {
	c.mu.RLock()
	entry, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.evict(id)
		return nil, nil
	}
	user := copyUser(&entry.user)
	return user, nil
}

// evict drops an entry once it has been seen expired, so dead entries do
// not pile up between invalidations. Re-checked under the write lock in
// case a Set raced the expiry read.
func (c *memoryCache) evict(id string) {
	c.mu.Lock()
	if entry, ok := c.entries[id]; ok && time.Now().After(entry.expiresAt) {
		delete(c.entries, id)
	}
	c.mu.Unlock()
}

func (c *memoryCache) Set(_ context.Context, id string, user *domain.User) error {
	c.mu.Lock()
	c.entries[id] = memoryEntry{
		user:      *copyUser(user),
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
	return nil
}

// copyUser detaches the edge sets so cached values cannot alias slices
// still being mutated by callers.
func copyUser(user *domain.User) *domain.User {
	cp := *user
	cp.Following = append(domain.IDSet{}, user.Following...)
	cp.Followers = append(domain.IDSet{}, user.Followers...)
	return &cp
}
