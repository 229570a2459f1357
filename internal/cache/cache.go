// Package cache provides the per-title headline cache. Regenerating a
// headline for a page that was just edited again wastes a collaborator
// call; entries are TTL-bound so hot pages still refresh.
package cache

import "time"

// Cache defines the headline cache interface
type Cache interface {
	// Get retrieves a cached headline
	Get(key string) (string, bool)

	// Set stores a headline with the given TTL
	Set(key string, value string, ttl time.Duration)

	// Clear removes all entries
	Clear()
}

// Nop is a disabled cache
type Nop struct{}

// Get always misses
func (Nop) Get(string) (string, bool) { return "", false }

// Set discards the value
func (Nop) Set(string, string, time.Duration) {}

// Clear does nothing
func (Nop) Clear() {}
