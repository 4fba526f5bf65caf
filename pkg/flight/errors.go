package flight

import "errors"

var (
	ErrReleased      = errors.New("flight: released")
	ErrAborted       = errors.New("flight: aborted")
	ErrInvalidConfig = errors.New("flight: invalid config")
)
