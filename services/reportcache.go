package services

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ReportCache is an explicit in-process cache for assembled report rows,
// keyed by report type plus canonicalized filter. Concurrent Gets for the
// same key share a single fetch; a Get with maxAge 0 always refetches, which
// is the refetch operation. Failed fetches are never retained.
type ReportCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	done      chan struct{}
	data      any
	err       error
	fetchedAt time.Time
}

func NewReportCache() *ReportCache {
	return &ReportCache{entries: make(map[string]*cacheEntry)}
}

func (c *ReportCache) Get(ctx context.Context, key string, maxAge time.Duration, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		select {
		case <-e.done:
			if e.err == nil && maxAge > 0 && time.Since(e.fetchedAt) < maxAge {
				c.mu.Unlock()
				return e.data, nil
			}
			// stale, fall through to refetch
		default:
			// fetch in flight, share its result
			c.mu.Unlock()
			select {
			case <-e.done:
				return e.data, e.err
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	e := &cacheEntry{done: make(chan struct{})}
	c.entries[key] = e
	c.mu.Unlock()

	data, err := fetch(ctx)

	c.mu.Lock()
	e.data, e.err, e.fetchedAt = data, err, time.Now()
	close(e.done)
	if err != nil && c.entries[key] == e {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	return data, err
}

// Invalidate drops every completed entry whose key starts with prefix.
// In-flight fetches are left to finish; their result lands already stale
// only if invalidated again after completion, which matches last-write-wins.
func (c *ReportCache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	dropped := 0
	for key, e := range c.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		select {
		case <-e.done:
			delete(c.entries, key)
			dropped++
		default:
		}
	}
	return dropped
}

// Len reports the number of retained entries, in-flight included.
func (c *ReportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
