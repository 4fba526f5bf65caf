// Package loader provides keyed read-through loading with per-key request
// deduplication.
//
// A Loader gives every key its own flight coordinator (see pkg/flight): any
// number of goroutines asking for the same key at the same time trigger a
// single call to the underlying Source, and all of them share the result.
// With a TTL configured the result stays reusable for that long after the
// load settles, turning the loader into a short-lived read-through cache
// that needs no separate invalidation sweep — expiry is the coordinator's
// idle window.
//
// The set of live per-key coordinators is bounded by an LRU. When the bound
// is exceeded the least recently used key is aborted and dropped, which
// cancels a still-running load for that key.
//
// # Usage
//
//	l := loader.New(loader.SourceFunc[string, *Profile](fetchProfile),
//	    loader.WithTTL(30*time.Second),
//	    loader.WithTimeout(2*time.Second),
//	    loader.WithCapacity(10_000))
//
//	// All concurrent requests for "alice" share one fetchProfile call.
//	p, err := l.Get(ctx, "alice")
//
//	// Bypass the cached value:
//	p, err = l.Refresh(ctx, "alice")
//
//	// Drop it (aborts an in-progress load):
//	l.Invalidate("alice")
//
// RedisSource adapts a Redis GET as a Source[string, string], mapping a
// missing key to ErrNotFound.
package loader
