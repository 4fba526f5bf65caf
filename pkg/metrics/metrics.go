package metrics

import (
	"sync"
	"time"

	"github.com/dmitrymomot/flightkit/pkg/flight"
)

// Recorder receives flight lifecycle events. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// FlightStarted is called when a new flight begins.
	FlightStarted()
	// FlightSucceeded is called when a flight settles successfully, with
	// the time elapsed since it started.
	FlightSucceeded(elapsed time.Duration)
	// FlightFailed is called when a flight settles with an error, with the
	// time elapsed since it started.
	FlightFailed(elapsed time.Duration)
	// FlightReleased is called when a flight is torn down.
	FlightReleased()
}

// Hooks adapts a Recorder to flight lifecycle callbacks:
//
//	coord := flight.New(factory, flight.WithHooks(metrics.Hooks[Result](rec)))
//
// Durations are measured from the most recent OnStart; when flights overlap
// through a refresh the measurement is approximate.
func Hooks[T any](r Recorder) flight.Hooks[T] {
	var (
		mu      sync.Mutex
		started time.Time
	)
	elapsed := func() time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return time.Since(started)
	}
	return flight.Hooks[T]{
		OnStart: func() {
			mu.Lock()
			started = time.Now()
			mu.Unlock()
			r.FlightStarted()
		},
		OnSuccess: func(T) {
			r.FlightSucceeded(elapsed())
		},
		OnError: func(error) {
			r.FlightFailed(elapsed())
		},
		OnRelease: func() {
			r.FlightReleased()
		},
	}
}
