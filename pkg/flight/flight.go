package flight

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/flightkit/pkg/operation"
)

// call is one in-flight or recently settled invocation of the factory,
// shared by every waiter attached to it. val and err are written once,
// before done is closed, and only read after.
type call[T any] struct {
	id     uuid.UUID
	done   chan struct{}
	val    T
	err    error
	token  context.Context
	cancel context.CancelCauseFunc
}

// Coordinator deduplicates concurrent invocations of an asynchronous
// factory. At most one flight is active at a time; callers attach to it
// through their own per-call operation, so one caller timing out or
// cancelling never affects the other waiters.
//
// A released flight is gone: the next call starts a new one. With an idle
// window configured, a settled flight stays attached and reusable until the
// window elapses.
type Coordinator[T any] struct {
	factory operation.Func[T]

	timeout       time.Duration
	idleRelease   time.Duration
	idleOnError   bool
	keepOnRelease bool
	hooks         Hooks[T]
	log           *slog.Logger

	mu        sync.Mutex
	current   *call[T]
	waiters   int
	idleTimer *time.Timer
}

// New creates a Coordinator around factory. Panics if factory is nil.
func New[T any](factory operation.Func[T], opts ...Option[T]) *Coordinator[T] {
	if factory == nil {
		panic("flight: factory must not be nil")
	}
	c := &Coordinator[T]{
		factory: factory,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run attaches a new waiter to the active flight, starting one if none is
// active or WithRefresh was requested. The returned Waiter must be awaited
// with Wait exactly once; the waiter count is not decremented until then.
func (c *Coordinator[T]) Run(opts ...CallOption) *Waiter[T] {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	c.mu.Lock()
	c.waiters++
	if c.current == nil || co.refresh {
		c.startLocked()
	}
	cl := c.current
	c.mu.Unlock()

	// The per-call view onto the shared flight. It has no mutation rights
	// over the flight itself: aborting it only detaches this waiter.
	work := func(ctx context.Context) (T, error) {
		select {
		case <-cl.done:
			return cl.val, cl.err
		case <-ctx.Done():
			var zero T
			return zero, context.Cause(ctx)
		}
	}
	var wopts []operation.Option
	if co.timeout > 0 {
		wopts = append(wopts, operation.WithTimeout(co.timeout))
	}
	return &Waiter[T]{
		coord: c,
		op:    operation.New(work, wopts...),
	}
}

// Do is the blocking convenience form of Run: it attaches a waiter and
// immediately waits on it with ctx as the external cancellation signal.
func (c *Coordinator[T]) Do(ctx context.Context, opts ...CallOption) (T, error) {
	return c.Run(opts...).Wait(ctx)
}

// AbortAll cancels the active flight's token with reason (ErrAborted when
// nil) and forces an immediate release, regardless of the waiter count or
// idle configuration. Attached waiters observe the cancellation through the
// flight's error. No-op when no flight is active.
func (c *Coordinator[T]) AbortAll(reason error) {
	if reason == nil {
		reason = ErrAborted
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cl := c.current
	if cl == nil {
		return
	}
	cl.cancel(reason)
	c.releaseLocked(cl.id)
}

// Active reports whether a flight is currently attached (in progress or
// inside its idle window).
func (c *Coordinator[T]) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// Waiters returns the number of callers currently attached.
func (c *Coordinator[T]) Waiters() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiters
}

// startLocked begins a new flight generation. Must be called with c.mu held.
func (c *Coordinator[T]) startLocked() {
	c.stopIdleTimerLocked()
	token, cancel := context.WithCancelCause(context.Background())
	cl := &call[T]{
		id:     uuid.New(),
		done:   make(chan struct{}),
		token:  token,
		cancel: cancel,
	}
	c.current = cl
	c.log.Debug("flight started", slog.String("flight_id", cl.id.String()))
	go c.fly(cl)
}

// fly runs the factory for one flight and drives its settle path: record
// the outcome, wake the waiters, fire hooks, then release now or arm the
// idle timer. If a refresh superseded this flight in the meantime, the
// release attempt is suppressed by the identity check.
func (c *Coordinator[T]) fly(cl *call[T]) {
	if c.hooks.OnStart != nil {
		c.hooks.OnStart()
	}

	var opts []operation.Option
	if c.timeout > 0 {
		opts = append(opts, operation.WithTimeout(c.timeout))
	}
	op := operation.New(c.factory, opts...)
	cl.val, cl.err = op.Run(cl.token)
	close(cl.done)

	if cl.err != nil {
		c.log.Debug("flight failed",
			slog.String("flight_id", cl.id.String()),
			slog.String("error", cl.err.Error()))
		if c.hooks.OnError != nil {
			c.hooks.OnError(cl.err)
		}
	} else {
		c.log.Debug("flight succeeded", slog.String("flight_id", cl.id.String()))
		if c.hooks.OnSuccess != nil {
			c.hooks.OnSuccess(cl.val)
		}
	}
	if c.hooks.OnEnd != nil {
		c.hooks.OnEnd()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != cl {
		return
	}
	delay := c.idleRelease
	if cl.err != nil && !c.idleOnError {
		delay = 0
	}
	if delay <= 0 {
		c.releaseLocked(cl.id)
		return
	}
	id := cl.id
	c.idleTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.releaseLocked(id)
	})
}

// detach concludes one waiter's attachment. When the count reaches zero and
// no idle window is configured, the active flight is released immediately,
// cancelling the factory if it is still running.
func (c *Coordinator[T]) detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.waiters > 0 {
		c.waiters--
	}
	if c.waiters == 0 && c.idleRelease <= 0 && c.current != nil {
		c.releaseLocked(c.current.id)
	}
}

// releaseLocked tears down the flight identified by id. A stale id (from an
// orphaned settle path or an already-fired timer) is a no-op, so release is
// idempotent and the first attempt wins. Must be called with c.mu held.
func (c *Coordinator[T]) releaseLocked(id uuid.UUID) {
	cl := c.current
	if cl == nil || cl.id != id {
		return
	}
	c.stopIdleTimerLocked()
	if !c.keepOnRelease && context.Cause(cl.token) == nil {
		cl.cancel(ErrReleased)
	}
	c.current = nil
	c.log.Debug("flight released", slog.String("flight_id", id.String()))
	if c.hooks.OnRelease != nil {
		c.hooks.OnRelease()
	}
}

// stopIdleTimerLocked revokes the pending idle release, if any. Must be
// called with c.mu held.
func (c *Coordinator[T]) stopIdleTimerLocked() {
	if c.idleTimer != nil {
		c.idleTimer.Stop()
		c.idleTimer = nil
	}
}
