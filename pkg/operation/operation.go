package operation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Func is the unit of work wrapped by an Operation. The context passed to it
// is the operation's own cancellation token: it is cancelled on timeout,
// caller cancellation, or manual Abort, and the work is expected to observe
// it to stop early. Cancellation is cooperative, not preemptive.
type Func[T any] func(ctx context.Context) (T, error)

// Operation controls a single asynchronous unit of work. It adds an optional
// timeout and an idempotent manual abort on top of the caller's own context
// cancellation. An Operation runs at most once.
type Operation[T any] struct {
	work    Func[T]
	timeout time.Duration

	token  context.Context
	cancel context.CancelCauseFunc

	mu      sync.Mutex
	started bool
}

type outcome[T any] struct {
	val T
	err error
}

// New creates an Operation around work. The cancellation token exists from
// construction, so Abort before Run is valid: it only poisons the token and
// makes the later Run fail fast with ErrAlreadyAborted.
// Panics if work is nil.
func New[T any](work Func[T], opts ...Option) *Operation[T] {
	if work == nil {
		panic("operation: work must not be nil")
	}
	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}
	o := &Operation[T]{work: work, timeout: cfg.timeout}
	o.token, o.cancel = context.WithCancelCause(context.Background())
	return o
}

// Run executes the wrapped work and blocks until it settles or the operation
// is aborted, whichever happens first. The provided ctx acts as the external
// cancellation signal: when it is done the operation aborts with
// ErrExternalAbort joined with the context's cause.
//
// Run may be called once. A second call returns ErrAlreadyStarted. If the
// operation was aborted before Run (via Abort or an already-cancelled ctx),
// Run returns ErrAlreadyAborted and the work is never invoked.
//
// The timeout timer and the ctx listener are released on every exit path.
func (o *Operation[T]) Run(ctx context.Context) (T, error) {
	var zero T

	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return zero, ErrAlreadyStarted
	}
	o.started = true
	o.mu.Unlock()

	if context.Cause(o.token) != nil {
		return zero, ErrAlreadyAborted
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		o.cancel(errors.Join(ErrExternalAbort, context.Cause(ctx)))
		return zero, ErrAlreadyAborted
	}

	if o.timeout > 0 {
		timer := time.AfterFunc(o.timeout, func() { o.Abort(ErrTimeout) })
		defer timer.Stop()
	}
	stop := context.AfterFunc(ctx, func() {
		o.Abort(errors.Join(ErrExternalAbort, context.Cause(ctx)))
	})
	defer stop()

	// Buffered so the losing settlement is discarded without leaking the
	// work goroutine.
	results := make(chan outcome[T], 1)
	go func() {
		val, err := o.work(o.token)
		results <- outcome[T]{val: val, err: err}
	}()

	select {
	case r := <-results:
		return r.val, r.err
	case <-o.token.Done():
		// A settlement already delivered before the abort woke us up is
		// authoritative.
		select {
		case r := <-results:
			return r.val, r.err
		default:
		}
		return zero, context.Cause(o.token)
	}
}

// Abort cancels the operation. It is idempotent: the first reason wins and
// later calls are no-ops. A nil reason is recorded as ErrAborted. Aborting
// before Run does not block or panic; it makes Run fail with
// ErrAlreadyAborted.
func (o *Operation[T]) Abort(reason error) {
	if reason == nil {
		reason = ErrAborted
	}
	o.cancel(reason)
}

// Started reports whether Run has been invoked.
func (o *Operation[T]) Started() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.started
}

// Aborted reports whether the operation has been cancelled from any source.
func (o *Operation[T]) Aborted() bool {
	return context.Cause(o.token) != nil
}
