// Package cache provides the in-memory TTL store and the cache-aside loader
// that the catalog service is built on.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/catalog-service/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTTL applies when a caller stores an entry without an explicit TTL.
	DefaultTTL = time.Hour
	// DefaultSweepInterval is how often the background sweep evicts expired
	// entries. Deliberately decoupled from DefaultTTL.
	DefaultSweepInterval = 5 * time.Minute
)

// entry is a single cached value with its expiration bookkeeping.
type entry[V any] struct {
	value     V
	createdAt time.Time
	expiresAt time.Time
}

// Store is a thread-safe key/value store with per-entry expiration.
//
// Keys are structured strings owned by callers ("products:fast",
// "product:42", "desc:42:pt"); the store never parses them. A background
// sweep physically evicts expired entries, but Get treats an expired entry
// as absent whether or not the sweep has run yet.
//
// The store is an optimization, never a correctness dependency: no method
// returns an error, and internal sweep failures are logged rather than
// propagated.
type Store[V any] struct {
	mu         sync.RWMutex
	name       string
	entries    map[string]entry[V]
	defaultTTL time.Duration
	onEvict    func(key string, value V)
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// Option configures a Store.
type Option[V any] func(*Store[V])

// WithEvictionNotify registers a callback invoked for every entry the
// background sweep evicts. The callback runs outside the store lock.
func WithEvictionNotify[V any](fn func(key string, value V)) Option[V] {
	return func(s *Store[V]) {
		s.onEvict = fn
	}
}

// New creates a Store and starts its background sweep. The name labels the
// store in metrics and eviction logs. Non-positive durations fall back to
// the package defaults.
func New[V any](name string, defaultTTL, sweepInterval time.Duration, opts ...Option[V]) *Store[V] {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}

	s := &Store[V]{
		name:       name,
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}

	go s.sweepLoop(sweepInterval)
	return s
}

// Set stores value under key with the store's default TTL, overwriting any
// existing entry.
func (s *Store[V]) Set(key string, value V) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL, overwriting any
// existing entry.
func (s *Store[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now()

	s.mu.Lock()
	s.entries[key] = entry[V]{
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	size := len(s.entries)
	s.mu.Unlock()

	metrics.RecordCacheOperation("set", "success")
	metrics.SetCacheEntries(s.name, size)
}

// Get returns the live value for key. Expired entries are treated as absent
// and deleted on the spot rather than waiting for the sweep.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		metrics.RecordCacheOperation("get", "miss")
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		// Double-check after acquiring the write lock; a concurrent Set may
		// have refreshed the entry.
		if cur, still := s.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		metrics.RecordCacheOperation("get", "expired")
		return zero, false
	}

	metrics.RecordCacheOperation("get", "hit")
	return e.value, true
}

// GetDefault returns the live value for key, or fallback when the key is
// absent or expired.
func (s *Store[V]) GetDefault(key string, fallback V) V {
	if v, ok := s.Get(key); ok {
		return v
	}
	return fallback
}

// Delete removes the entry for key if present.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	size := len(s.entries)
	s.mu.Unlock()

	metrics.RecordCacheOperation("delete", "success")
	metrics.SetCacheEntries(s.name, size)
}

// Clear removes all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry[V])
	s.mu.Unlock()

	metrics.RecordCacheOperation("clear", "success")
	metrics.SetCacheEntries(s.name, 0)
}

// Len returns the number of stored entries, expired or not.
func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stop shuts down the background sweep. Safe to call more than once.
func (s *Store[V]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// sweepLoop periodically evicts expired entries until Stop is called.
func (s *Store[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep evicts expired entries and emits an eviction notification per entry.
// A failure inside the sweep must never take the process down.
func (s *Store[V]) sweep() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("cache", s.name).
				Interface("panic", r).
				Msg("Cache sweep recovered")
		}
	}()

	now := time.Now()
	type evicted struct {
		key   string
		value V
	}
	var expired []evicted

	s.mu.Lock()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			expired = append(expired, evicted{key: k, value: e.value})
			delete(s.entries, k)
		}
	}
	size := len(s.entries)
	s.mu.Unlock()

	metrics.SetCacheEntries(s.name, size)

	for _, e := range expired {
		metrics.RecordCacheOperation("evict", "expired")
		log.Debug().
			Str("cache", s.name).
			Str("key", e.key).
			Str("value_type", fmt.Sprintf("%T", e.value)).
			Msg("Evicted expired cache entry")
		if s.onEvict != nil {
			s.onEvict(e.key, e.value)
		}
	}
}
