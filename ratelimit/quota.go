package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// QuotaCache holds the last quota Record observed per host. It is advisory,
// read-only input for policies; the remote service stays the source of
// truth, and nothing in this module acts on the cache authoritatively.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: records are stored by value; callers cannot mutate them.
type QuotaCache struct {
	mu     sync.RWMutex
	byHost map[string]Record

	group singleflight.Group
}

// NewQuotaCache creates an empty quota cache.
func NewQuotaCache() *QuotaCache {
	return &QuotaCache{
		byHost: make(map[string]Record),
	}
}

// Observe records the quota state seen for host.
func (q *QuotaCache) Observe(host string, rec Record) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.byHost[host] = rec
}

// Get returns the last record observed for host.
func (q *QuotaCache) Get(host string) (Record, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	rec, ok := q.byHost[host]
	return rec, ok
}

// Refresh fetches fresh quota state for host and caches it. Concurrent
// refreshes for the same host are collapsed into a single fetch; every
// caller receives that fetch's result.
func (q *QuotaCache) Refresh(ctx context.Context, host string, fetch func(ctx context.Context) (Record, error)) (Record, error) {
	v, err, _ := q.group.Do(host, func() (any, error) {
		rec, err := fetch(ctx)
		if err != nil {
			return Record{}, err
		}
		q.Observe(host, rec)
		return rec, nil
	})
	if err != nil {
		return Record{}, err
	}
	return v.(Record), nil
}
