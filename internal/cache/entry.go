package cache

import "sync/atomic"

// entry holds one memoized resolution: metadata plus timestamps, with
// individually atomic fields so the owning map can stay lock-free.
type entry struct {
	value    any
	touched  atomic.Bool
	lastSeen atomic.Int64 // UnixNano
}

func newEntry(value any, now int64) *entry {
	e := &entry{value: value}
	e.touched.Store(true)
	e.lastSeen.Store(now)
	return e
}

func (e *entry) touch(now int64) {
	e.touched.Store(true)
	e.lastSeen.Store(now)
}
