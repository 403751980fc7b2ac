package heatmap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/philipparndt/gomold/pkg/mesh"
	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	fingerprint uint64
	count       int
}

type cacheEntry struct {
	points  []Point
	expires time.Time
}

// Cache memoizes samples per (mesh, count) for a limited time. Concurrent
// requests for the same key share one sampling run.
type Cache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	group   singleflight.Group
}

// NewCache creates a cache whose entries live for ttl
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

// Samples returns cached samples for m or draws new ones. The seed is
// derived from the mesh, so equal meshes always get equal samples.
func (c *Cache) Samples(ctx context.Context, m *mesh.TriangleMesh, count int) ([]Point, error) {
	key := cacheKey{fingerprint: m.Fingerprint(), count: count}

	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Before(entry.expires) {
		return entry.points, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%x/%d", key.fingerprint, key.count), func() (interface{}, error) {
		points, err := Sample(ctx, m, count, key.fingerprint)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		now := c.now()
		c.evictLocked(now)
		c.entries[key] = cacheEntry{points: points, expires: now.Add(c.ttl)}
		c.mu.Unlock()
		return points, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Point), nil
}

// evictLocked drops entries expired at now. c.mu must be held.
func (c *Cache) evictLocked(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
}
