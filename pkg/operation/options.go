package operation

import "time"

// Option configures an Operation during construction.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout arms a deadline for the operation. When the work has not
// settled within d, the operation aborts with ErrTimeout. Non-positive
// values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
