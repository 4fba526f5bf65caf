package metrics

import "time"

type nopRecorder struct{}

// NewNop returns a Recorder that discards all events.
func NewNop() Recorder {
	return nopRecorder{}
}

func (nopRecorder) FlightStarted() {}

func (nopRecorder) FlightSucceeded(_ time.Duration) {}

func (nopRecorder) FlightFailed(_ time.Duration) {}

func (nopRecorder) FlightReleased() {}
