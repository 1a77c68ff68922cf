package cache

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpures/reskey"
)

// BuildFunc creates the object for a key that missed the cache.
type BuildFunc[V any] func() (V, error)

// ResourceCache maps resource keys to lazily built objects.
//
// Entries form an intrusive list ordered from most to least recently used.
// The zero value is not usable; create caches with New.
type ResourceCache[V any] struct {
	entries map[reskey.ResourceKey]*entry[V]

	// head is the most recently used entry, tail the least.
	head *entry[V]
	tail *entry[V]

	stats  Stats
	logger *slog.Logger
}

type entry[V any] struct {
	key   reskey.ResourceKey
	value V
	prev  *entry[V]
	next  *entry[V]
}

// New creates an empty cache.
func New[V any](opts ...Option) *ResourceCache[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ResourceCache[V]{
		entries: make(map[reskey.ResourceKey]*entry[V]),
		logger:  o.logger,
	}
}

// GetOrBuild returns the object cached under key. On a miss build is called
// exactly once and its result is stored. A failed build stores nothing, so
// the next call for the key builds again.
func (c *ResourceCache[V]) GetOrBuild(key reskey.ResourceKey, build BuildFunc[V]) (V, error) {
	if e, ok := c.entries[key]; ok {
		c.stats.Hits++
		c.moveToFront(e)
		return e.value, nil
	}
	c.stats.Misses++

	if !key.IsValid() {
		var zero V
		return zero, ErrInvalidKey
	}

	value, err := build()
	if err != nil {
		c.stats.Failures++
		c.logger.Warn("cache: build failed", "key", key, "err", err)
		var zero V
		return zero, fmt.Errorf("cache: build %v: %w", key, err)
	}
	c.stats.Builds++

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.pushFront(e)
	c.logger.Debug("cache: built", "key", key, "len", len(c.entries))
	return value, nil
}

// Get returns the object cached under key and marks it as recently used.
func (c *ResourceCache[V]) Get(key reskey.ResourceKey) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.moveToFront(e)
	return e.value, true
}

// Contains reports whether key is cached without touching its recency.
func (c *ResourceCache[V]) Contains(key reskey.ResourceKey) bool {
	_, ok := c.entries[key]
	return ok
}

// Remove drops key and returns its object so the caller can release it.
func (c *ResourceCache[V]) Remove(key reskey.ResourceKey) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.unlink(e)
	delete(c.entries, key)
	return e.value, true
}

// Oldest returns the least recently used key.
func (c *ResourceCache[V]) Oldest() (reskey.ResourceKey, bool) {
	if c.tail == nil {
		return reskey.ResourceKey{}, false
	}
	return c.tail.key, true
}

// Range calls fn for every entry from most to least recently used until fn
// returns false. fn must not modify the cache.
func (c *ResourceCache[V]) Range(fn func(key reskey.ResourceKey, value V) bool) {
	for e := c.head; e != nil; e = e.next {
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Clear drops every entry. Statistics are kept.
func (c *ResourceCache[V]) Clear() {
	clear(c.entries)
	c.head = nil
	c.tail = nil
}

// Len returns the number of cached objects.
func (c *ResourceCache[V]) Len() int {
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *ResourceCache[V]) Stats() Stats {
	s := c.stats
	s.Len = len(c.entries)
	return s
}

func (c *ResourceCache[V]) pushFront(e *entry[V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *ResourceCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *ResourceCache[V]) unlink(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
