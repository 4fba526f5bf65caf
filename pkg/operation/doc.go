// Package operation wraps a single asynchronous unit of work with a timeout,
// caller cancellation, and an idempotent manual abort.
//
// An Operation is a one-shot controller. The wrapped function receives the
// operation's cancellation token (a context) and is expected to observe it
// cooperatively; the controller guarantees that the caller of Run returns
// promptly on abort, not that the underlying work halts instantly.
//
// Three independent sources can cancel an operation: the configured timeout,
// the context passed to Run, and an explicit Abort call. The first reason
// wins and is the one Run returns; later cancellations are silently ignored.
// Timers and context listeners are released on every exit path, including
// abort-before-start.
//
// # Usage
//
//	op := operation.New(func(ctx context.Context) (string, error) {
//	    req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
//	    resp, err := http.DefaultClient.Do(req)
//	    if err != nil {
//	        return "", err
//	    }
//	    defer resp.Body.Close()
//	    return resp.Status, nil
//	}, operation.WithTimeout(5*time.Second))
//
//	status, err := op.Run(ctx)
//	switch {
//	case errors.Is(err, operation.ErrTimeout):
//	    // deadline elapsed before the request settled
//	case errors.Is(err, operation.ErrExternalAbort):
//	    // ctx was cancelled
//	}
//
// Abort may be called from any goroutine, any number of times, before or
// after Run. Calling it before Run makes the later Run fail fast with
// ErrAlreadyAborted without ever invoking the work.
package operation
