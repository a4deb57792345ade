package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/catalog-service/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// Loader implements the cache-aside protocol over a Store. Callers ask for a
// key and supply a producer; on a miss the producer runs once and its result
// is stored under the key. Concurrent callers for the same uncached key share
// a single in-flight producer invocation instead of each starting their own.
type Loader struct {
	store *Store[any]
	group singleflight.Group
}

// NewLoader creates a Loader over the given store.
func NewLoader(store *Store[any]) *Loader {
	return &Loader{store: store}
}

// Store exposes the underlying store for read-only peeks at sibling views.
func (l *Loader) Store() *Store[any] {
	return l.store
}

// GetOrFetch returns the cached value for key if present. On a miss it
// invokes produce, stores the result under key with the given TTL, and
// returns it.
//
// A producer failure is returned to every caller waiting on the flight and
// is never cached, so the next call retries. The producer runs detached from
// the caller's cancellation: a cancelled user request must not abort a
// populate whose result other callers are waiting on.
func (l *Loader) GetOrFetch(ctx context.Context, key string, ttl time.Duration, produce func(context.Context) (any, error)) (any, error) {
	if v, ok := l.store.Get(key); ok {
		metrics.RecordCacheOperation("get_or_fetch", "hit")
		return v, nil
	}
	metrics.RecordCacheOperation("get_or_fetch", "miss")

	v, err, _ := l.group.Do(key, func() (any, error) {
		// Re-check under the flight: a previous flight may have populated
		// the key between our miss and this callback running.
		if v, ok := l.store.Get(key); ok {
			return v, nil
		}

		v, err := produce(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		l.store.SetWithTTL(key, v, ttl)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Fetch is the typed wrapper around Loader.GetOrFetch. A type mismatch on a
// cached value means two semantic queries aliased the same key, which the
// key convention forbids; it is reported as an error rather than served.
func Fetch[T any](ctx context.Context, l *Loader, key string, ttl time.Duration, produce func(context.Context) (T, error)) (T, error) {
	var zero T

	v, err := l.GetOrFetch(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return produce(ctx)
	})
	if err != nil {
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: value under %q is %T, want %T", key, v, zero)
	}
	return out, nil
}

// Peek returns the cached value for key without triggering a fetch, typed.
// Used for best-effort cross-references between views, e.g. the item detail
// reading the current offers view.
func Peek[T any](l *Loader, key string) (T, bool) {
	var zero T
	v, ok := l.store.Get(key)
	if !ok {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}
