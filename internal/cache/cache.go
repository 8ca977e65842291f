// Package cache holds successful translations in a bounded in-memory LRU.
package cache

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sumitmahankale/ShabdSetu/internal/globaltime"
)

const DefaultCapacity = 1000

// Entry is one cached value. Entries are replaced wholesale, never mutated.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
}

// ResponseCache is a least-recently-used cache safe for concurrent use.
// Get refreshes recency; Put on an existing key overwrites and refreshes.
type ResponseCache[V any] struct {
	entries *lru.Cache[string, Entry[V]]
	clock   globaltime.Clock
}

func New[V any](capacity int, clock globaltime.Clock) (*ResponseCache[V], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	entries, err := lru.New[string, Entry[V]](capacity)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &ResponseCache[V]{
		entries: entries,
		clock:   globaltime.OrSystem(clock),
	}, nil
}

func (c *ResponseCache[V]) Get(key string) (V, bool) {
	entry, ok := c.entries.Get(key)
	if !ok {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Lookup is Get returning the whole entry.
func (c *ResponseCache[V]) Lookup(key string) (Entry[V], bool) {
	return c.entries.Get(key)
}

func (c *ResponseCache[V]) Put(key string, value V) {
	c.entries.Add(key, Entry[V]{
		Key:       key,
		Value:     value,
		CreatedAt: c.clock.Now(),
	})
}

func (c *ResponseCache[V]) Size() int {
	return c.entries.Len()
}

// Clear drops every entry and returns how many were removed.
func (c *ResponseCache[V]) Clear() int {
	removed := c.entries.Len()
	c.entries.Purge()
	return removed
}

// Keys returns up to limit keys, most recently used first. limit <= 0 means all.
func (c *ResponseCache[V]) Keys(limit int) []string {
	keys := c.entries.Keys()
	if limit <= 0 || limit > len(keys) {
		limit = len(keys)
	}
	out := make([]string, 0, limit)
	for i := len(keys) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, keys[i])
	}
	return out
}
