package flight

import (
	"context"
	"sync"

	"github.com/dmitrymomot/flightkit/pkg/operation"
)

// Waiter is one caller's attachment to a shared flight. It wraps the flight
// in its own operation, so per-call timeout and abort affect only this
// waiter.
type Waiter[T any] struct {
	coord *Coordinator[T]
	op    *operation.Operation[T]
	once  sync.Once
}

// Wait blocks until the shared flight settles or this waiter is cancelled,
// whichever happens first, and returns the flight's result, the flight's
// error, or this waiter's own cancellation reason. ctx is the waiter's
// external cancellation signal.
//
// The first Wait concludes the attachment and decrements the coordinator's
// waiter count; repeated calls return operation.ErrAlreadyStarted.
func (w *Waiter[T]) Wait(ctx context.Context) (T, error) {
	first := false
	w.once.Do(func() { first = true })
	if !first {
		var zero T
		return zero, operation.ErrAlreadyStarted
	}
	val, err := w.op.Run(ctx)
	w.coord.detach()
	return val, err
}

// Abort cancels this waiter only; the shared flight and other waiters are
// unaffected. Idempotent, first reason wins; a nil reason is recorded as
// operation.ErrAborted.
func (w *Waiter[T]) Abort(reason error) {
	w.op.Abort(reason)
}
