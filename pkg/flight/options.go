package flight

import (
	"log/slog"
	"time"
)

// Option configures a Coordinator during construction.
type Option[T any] func(*Coordinator[T])

// Hooks carries optional lifecycle callbacks for a Coordinator. All fields
// may be nil. OnRelease is invoked with the coordinator's internal lock
// held, so it must not call back into the Coordinator.
type Hooks[T any] struct {
	// OnStart fires when a new flight begins, before the factory runs.
	OnStart func()
	// OnSuccess fires with the result when the factory settles successfully.
	OnSuccess func(T)
	// OnError fires with the failure when the factory settles with an error.
	OnError func(error)
	// OnEnd fires after OnSuccess or OnError, on every settlement.
	OnEnd func()
	// OnRelease fires when the flight is torn down.
	OnRelease func()
}

// WithTimeout bounds every flight: a factory invocation that has not
// settled within d is aborted with operation.ErrTimeout. Non-positive
// values are ignored.
func WithTimeout[T any](d time.Duration) Option[T] {
	return func(c *Coordinator[T]) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithIdleRelease keeps a settled flight attached for d after completion,
// so callers arriving within the window reuse the result without invoking
// the factory again. Without this option the flight is released as soon as
// it settles or its last waiter detaches. Non-positive values are ignored.
func WithIdleRelease[T any](d time.Duration) Option[T] {
	return func(c *Coordinator[T]) {
		if d > 0 {
			c.idleRelease = d
		}
	}
}

// WithIdleOnError extends the idle window to failed flights as well. By
// default only successful results are kept for reuse; failures are released
// immediately so the next caller retries.
func WithIdleOnError[T any]() Option[T] {
	return func(c *Coordinator[T]) {
		c.idleOnError = true
	}
}

// WithKeepOnRelease leaves the flight's cancellation token untouched on
// release. By default releasing a flight cancels its token, propagating
// cancellation to a factory invocation that is still running.
func WithKeepOnRelease[T any]() Option[T] {
	return func(c *Coordinator[T]) {
		c.keepOnRelease = true
	}
}

// WithHooks installs lifecycle callbacks.
func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(c *Coordinator[T]) {
		c.hooks = h
	}
}

// WithLogger sets the logger for flight lifecycle events. Events are logged
// at debug level. By default the coordinator is silent.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Coordinator[T]) {
		if logger != nil {
			c.log = logger
		}
	}
}

// CallOption configures a single Run or Do call.
type CallOption func(*callOptions)

type callOptions struct {
	timeout time.Duration
	refresh bool
}

// WithCallTimeout bounds this waiter's wait only; the shared flight and
// other waiters are unaffected. Non-positive values are ignored.
func WithCallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRefresh starts a new flight even when one is active. Waiters already
// attached to the previous flight keep their attachment and still receive
// its result; its scheduled release is suppressed by the identity check so
// it cannot affect the new flight.
func WithRefresh() CallOption {
	return func(o *callOptions) {
		o.refresh = true
	}
}
