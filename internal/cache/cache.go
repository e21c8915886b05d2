// Package cache implements a concurrent sliding-expiration memoization
// cache for resolved unit expressions: a lock-free sync.Map keyed by
// arbitrary text, evicted by a touched/lastSeen pair driven by an
// external tick rather than a fixed deadline.
package cache

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Cache memoizes resolutions of type T keyed by the exact byte sequence
// of the input expression. UTF-8 and UTF-16 callers producing the same
// text as different byte sequences get distinct entries; no transcoding
// happens on the hot path.
type Cache[T any] struct {
	entries sync.Map // string -> *entry
	sliding time.Duration
	size    atomic.Int64
}

// New returns an empty cache with the given sliding-expiration window.
func New[T any](slidingExpiration time.Duration) *Cache[T] {
	return &Cache[T]{sliding: slidingExpiration}
}

// LookupOrResolve returns the cached value for key, touching it, or calls
// resolve and inserts the result on a miss. Two concurrent misses on the
// same key may both call resolve; only one of the two results survives,
// per sync.Map's add-if-absent contract.
func (c *Cache[T]) LookupOrResolve(key string, resolve func() (T, error)) (T, error) {
	now := time.Now().UnixNano()
	if v, ok := c.entries.Load(key); ok {
		e := v.(*entry)
		e.touch(now)
		return e.value.(T), nil
	}

	value, err := resolve()
	if err != nil {
		var zero T
		return zero, err
	}

	actual, loaded := c.entries.LoadOrStore(key, newEntry(value, now))
	if !loaded {
		c.size.Add(1)
	}
	winner := actual.(*entry)
	winner.touch(now)
	return winner.value.(T), nil
}

// ExpirationTick clears each entry's touched flag, evicting any entry that
// was already untouched and has aged past the sliding-expiration window.
// If memoryPressurePercent has reached highPressureThreshold, it
// additionally evicts the least-recently-seen highPressureClearPercentage
// of the entries that survived the sliding-expiration pass.
func (c *Cache[T]) ExpirationTick(memoryPressurePercent, highPressureThreshold, highPressureClearPercentage int) {
	now := time.Now().UnixNano()
	deadline := now - c.sliding.Nanoseconds()

	survivors := make([]survivor, 0)
	c.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		wasTouched := e.touched.Swap(false)
		if !wasTouched && e.lastSeen.Load() < deadline {
			c.entries.Delete(k)
			c.size.Add(-1)
			return true
		}
		survivors = append(survivors, survivor{key: k.(string), lastSeen: e.lastSeen.Load()})
		return true
	})

	if memoryPressurePercent >= highPressureThreshold {
		c.evictColdest(survivors, highPressureClearPercentage)
	}
}

// survivor is a snapshot used only to rank entries for bulk eviction; it
// is never stored back into the cache.
type survivor struct {
	key      string
	lastSeen int64
}

func (c *Cache[T]) evictColdest(survivors []survivor, clearPercentage int) {
	if len(survivors) == 0 || clearPercentage <= 0 {
		return
	}
	sort.Slice(survivors, func(i, j int) bool { return survivors[i].lastSeen < survivors[j].lastSeen })

	n := len(survivors) * clearPercentage / 100
	for _, s := range survivors[:n] {
		if _, deleted := c.entries.LoadAndDelete(s.key); deleted {
			c.size.Add(-1)
		}
	}
}

// Clear removes every entry, used on reconfiguration.
func (c *Cache[T]) Clear() {
	c.entries.Range(func(k, _ any) bool {
		c.entries.Delete(k)
		return true
	})
	c.size.Store(0)
}

// Len reports the current entry count, for diagnostics.
func (c *Cache[T]) Len() int {
	return int(c.size.Load())
}
