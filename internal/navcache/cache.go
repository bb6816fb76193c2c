// Package navcache provides a bounded, expiring, insertion-ordered cache for
// navigation results.
//
// Entries are served while younger than the TTL. At capacity, adding a new
// key evicts the oldest inserted entry (FIFO, not LRU: reads do not refresh
// position). Concurrent loads of one missing key share a single computation.
package navcache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// Defaults for a zero-configured cache.
const (
	DefaultTTL      = 5 * time.Minute
	DefaultCapacity = 50
)

// LoadFunc computes the value for a missing key.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Cache is safe for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	// order holds *entry[V], oldest insertion at the front.
	order  *list.List
	flight singleflight.Group
	opts   options

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type entry[V any] struct {
	key    string
	value  V
	stored time.Time
}

// Stats is a point-in-time view of cache counters.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// New creates a cache.
func New[V any](opts ...Option) *Cache[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		opts:    o,
	}
}

// Get returns the value stored under key if it is younger than the TTL.
// An expired entry is removed.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	v, ok := c.getLocked(key)
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
		c.opts.recorder.IncCacheLookup(c.opts.name, metrics.CacheHit)
	} else {
		c.misses.Add(1)
		c.opts.recorder.IncCacheLookup(c.opts.name, metrics.CacheMiss)
	}
	return v, ok
}

func (c *Cache[V]) getLocked(key string) (V, bool) {
	var zero V
	el, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.expired(e) {
		c.removeLocked(el)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the current time. Overwriting a key moves
// it to the newest insertion position. Adding a new key at capacity evicts
// the oldest inserted entry first.
func (c *Cache[V]) Set(key string, value V) {
	now := c.opts.clock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value, e.stored = value, now
		c.order.MoveToBack(el)
		return
	}
	for c.order.Len() >= c.opts.capacity {
		oldest := c.order.Front()
		if oldest == nil {
			break
		}
		c.removeLocked(oldest)
		c.evictions.Add(1)
		c.opts.recorder.IncCacheEviction(c.opts.name)
	}
	c.entries[key] = c.order.PushBack(&entry[V]{key: key, value: value, stored: now})
}

// GetOrLoad returns the cached value for key, or runs load and caches its
// result. Concurrent callers missing the same key wait for one load. Load
// errors are returned to every waiting caller and are not cached.
//
// A caller whose ctx is already done gets ctx.Err(). The shared load runs
// without ctx's cancellation, so one caller going away never fails the
// others waiting on the same key.
func (c *Cache[V]) GetOrLoad(ctx context.Context, key string, load LoadFunc[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}
	loadCtx := context.WithoutCancel(ctx)

	res, err, _ := c.flight.Do(key, func() (any, error) {
		// A concurrent flight may have filled the key between Get and Do.
		c.mu.Lock()
		v, ok := c.getLocked(key)
		c.mu.Unlock()
		if ok {
			return v, nil
		}

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.removeLocked(el)
	}
}

// Purge removes every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Sweep removes expired entries and returns how many were removed.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*entry[V])) {
			c.removeLocked(el)
			removed++
		}
		el = next
	}
	return removed
}

// Len returns the number of stored entries, expired ones included until
// they are read or swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns stored keys from oldest to newest insertion.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[V]).key)
	}
	return keys
}

// Stats returns the cache counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Entries:   c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Name is the label used for metrics and logs.
func (c *Cache[V]) Name() string {
	return c.opts.name
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	return c.opts.clock().Sub(e.stored) >= c.opts.ttl
}

func (c *Cache[V]) removeLocked(el *list.Element) {
	e := el.Value.(*entry[V])
	delete(c.entries, e.key)
	c.order.Remove(el)
}
