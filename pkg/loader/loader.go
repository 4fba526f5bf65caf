package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/flightkit/pkg/flight"
)

// Source produces values for keys. Load receives the flight's cancellation
// context and must observe it.
type Source[K comparable, V any] interface {
	Load(ctx context.Context, key K) (V, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

func (f SourceFunc[K, V]) Load(ctx context.Context, key K) (V, error) {
	return f(ctx, key)
}

// Loader deduplicates concurrent loads per key: each key gets its own
// flight coordinator, so any number of concurrent Get calls for the same
// key invoke the source once and share the result. With a TTL configured,
// the result stays reusable for that long after the load settles.
//
// The set of live coordinators is bounded by an LRU; evicting a
// coordinator aborts whatever it is doing and releases its result.
type Loader[K comparable, V any] struct {
	source  Source[K, V]
	ttl     time.Duration
	timeout time.Duration
	log     *slog.Logger

	mu      sync.Mutex
	flights *lru[K, *flight.Coordinator[V]]
}

// New creates a Loader over source. Panics if source is nil.
func New[K comparable, V any](source Source[K, V], opts ...Option) *Loader[K, V] {
	if source == nil {
		panic("loader: source must not be nil")
	}
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader[K, V]{
		source:  source,
		ttl:     cfg.ttl,
		timeout: cfg.timeout,
		log:     cfg.logger,
		flights: newLRU[K, *flight.Coordinator[V]](cfg.capacity),
	}
}

// Get returns the value for key, loading it through the source at most once
// no matter how many goroutines ask concurrently. Within the TTL after a
// successful load the cached result is returned without calling the source.
func (l *Loader[K, V]) Get(ctx context.Context, key K) (V, error) {
	return l.coordinator(key).Do(ctx)
}

// Refresh forces a new load for key even if one is in flight or cached.
// Waiters already attached to the previous load still receive its result.
func (l *Loader[K, V]) Refresh(ctx context.Context, key K) (V, error) {
	return l.coordinator(key).Do(ctx, flight.WithRefresh())
}

// Invalidate drops key: a cached result is released and an in-progress load
// is aborted, so its waiters observe a cancellation error. No-op for
// unknown keys.
func (l *Loader[K, V]) Invalidate(key K) {
	l.mu.Lock()
	co, ok := l.flights.remove(key)
	l.mu.Unlock()
	if ok {
		co.AbortAll(ErrInvalidated)
	}
}

// Len returns the number of live per-key coordinators.
func (l *Loader[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flights.len()
}

// coordinator returns the flight coordinator for key, creating one on the
// first request. Evicted coordinators are aborted outside the lock; the
// coordinator's own release path then calls back into drop, which is why
// no coordinator method is ever invoked while l.mu is held.
func (l *Loader[K, V]) coordinator(key K) *flight.Coordinator[V] {
	l.mu.Lock()
	if co, ok := l.flights.get(key); ok {
		l.mu.Unlock()
		return co
	}

	var co *flight.Coordinator[V]
	co = flight.New(func(ctx context.Context) (V, error) {
		return l.source.Load(ctx, key)
	},
		flight.WithTimeout[V](l.timeout),
		flight.WithIdleRelease[V](l.ttl),
		flight.WithLogger[V](l.log),
		flight.WithHooks(flight.Hooks[V]{
			OnRelease: func() { l.drop(key, co) },
		}),
	)
	evicted, evictedOK := l.flights.put(key, co)
	l.mu.Unlock()

	if evictedOK {
		evicted.AbortAll(ErrEvicted)
	}
	return co
}

// drop removes the mapping for key, but only while it still points at co:
// a released coordinator must not evict a newer one created for the same
// key in the meantime.
func (l *Loader[K, V]) drop(key K, co *flight.Coordinator[V]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.flights.get(key); ok && cur == co {
		l.flights.remove(key)
	}
}
