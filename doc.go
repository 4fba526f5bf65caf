// Package flightkit provides small, composable primitives for controlling
// asynchronous computations.
//
// The module is organised as a set of self-contained packages:
//
//   - pkg/operation wraps a single unit of work with a timeout, caller
//     cancellation, and an idempotent manual abort. An operation runs at
//     most once and cleans up its timers and listeners on every exit path.
//   - pkg/flight coalesces concurrent requests for the same logical
//     operation into one shared "flight". Each caller attaches through its
//     own cancellable wrapper, so one caller timing out never affects the
//     others. A configurable idle window keeps a completed result reusable
//     before the flight is torn down.
//   - pkg/loader generalises the coordinator to keyed read-through loading
//     (one flight per key, bounded by an LRU), with a Redis-backed source
//     included.
//   - pkg/metrics plugs flight lifecycle events into Prometheus or any
//     custom Recorder.
//
// Cancellation throughout the module is cooperative: work receives a
// context that is cancelled on timeout, caller cancellation, or abort, and
// is expected to observe it. Nothing is preempted.
package flightkit
