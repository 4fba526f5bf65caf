package loader

import (
	"log/slog"
	"time"
)

const defaultCapacity = 1024

// Option configures a Loader during construction.
type Option func(*loaderOptions)

type loaderOptions struct {
	ttl      time.Duration
	timeout  time.Duration
	capacity int
	logger   *slog.Logger
}

func defaultOptions() loaderOptions {
	return loaderOptions{
		capacity: defaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithTTL keeps a loaded value reusable for d after the load settles.
// Without it, a value is dropped as soon as its last waiter detaches.
// Non-positive values are ignored.
func WithTTL(d time.Duration) Option {
	return func(o *loaderOptions) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithTimeout bounds every source load. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *loaderOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithCapacity bounds the number of live per-key coordinators. The least
// recently used key is aborted and dropped when the bound is exceeded.
// Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(o *loaderOptions) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithLogger sets the logger passed to the per-key coordinators.
func WithLogger(logger *slog.Logger) Option {
	return func(o *loaderOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
