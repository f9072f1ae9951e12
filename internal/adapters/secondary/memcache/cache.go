// Package memcache is an in-process TTL cache for rendered report payloads.
// Re-aggregating a full import on every request is cheap but not free;
// identical file + settings + filter combinations are served from memory.
package memcache

import (
	"sync"
	"time"

	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

// Store caches byte payloads with a fixed TTL.
type Store struct {
	entries map[string]entry
	mu      sync.RWMutex
	ttl     time.Duration
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

var _ ports.ReportCache = (*Store)(nil)

// NewStore creates a cache and starts its background sweep goroutine.
func NewStore(ttl, sweepInterval time.Duration) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
	go s.sweep(sweepInterval)
	return s
}

// Get returns the cached payload for key if it has not expired.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a payload under key for the configured TTL.
func (s *Store) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiresAt: time.Now().Add(s.ttl)}
}

// Len counts live entries, expired ones included until the next sweep.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sweep removes expired entries on a fixed interval.
func (s *Store) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for key, e := range s.entries {
			if now.After(e.expiresAt) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}
