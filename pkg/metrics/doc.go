// Package metrics instruments flight coordinators without coupling them to
// a specific backend.
//
// The Recorder interface receives lifecycle events; Hooks adapts a Recorder
// to the callbacks a flight.Coordinator accepts. Two implementations ship
// with the package: NewPrometheus registers an in-flight gauge, a settled
// counter by result, a duration histogram and a release counter, and NewNop
// discards everything.
//
// # Usage
//
//	rec := metrics.NewPrometheus(prometheus.DefaultRegisterer, "myapp")
//	coord := flight.New(factory, flight.WithHooks(metrics.Hooks[Result](rec)))
package metrics
