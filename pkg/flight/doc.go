// Package flight coalesces concurrent requests for the same logical
// operation into one underlying execution.
//
// A Coordinator wraps an asynchronous factory and guarantees that at most
// one invocation — a flight — is active at a time. Callers attach to the
// shared flight through their own cancellable wrapper (see pkg/operation),
// so a per-call timeout or abort detaches that caller without disturbing
// the others. The coordinator tracks the number of attached waiters and
// releases the flight when the count drops to zero, or, with an idle
// window configured, keeps a settled result reusable until the window
// elapses.
//
// Each flight carries an opaque identity. Every release attempt is checked
// against the identity captured when it was scheduled, so a stale release
// (from an idle timer or an orphaned settle path) can never tear down a
// newer flight started by a refresh.
//
// # Usage
//
//	coord := flight.New(func(ctx context.Context) (*Price, error) {
//	    return fetchSpotPrice(ctx)
//	}, flight.WithTimeout[*Price](5*time.Second),
//	    flight.WithIdleRelease[*Price](time.Minute))
//
//	// Concurrent callers share one fetch; for the next minute the result
//	// is served without refetching.
//	price, err := coord.Do(ctx)
//
//	// Force a fresh fetch regardless of the idle window:
//	price, err = coord.Do(ctx, flight.WithRefresh())
//
//	// A caller in a hurry bounds only its own wait:
//	price, err = coord.Do(ctx, flight.WithCallTimeout(500*time.Millisecond))
//
// For split attach/await, Run returns a Waiter with its own Abort. Every
// Waiter obtained from Run must be awaited exactly once.
//
// Defaults can come from the environment via LoadConfig and FromConfig.
// Lifecycle hooks (WithHooks) integrate logging or metrics; see
// pkg/metrics for a Prometheus adapter.
package flight
