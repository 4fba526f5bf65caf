package loader

import "errors"

var (
	ErrNotFound    = errors.New("loader: key not found")
	ErrInvalidated = errors.New("loader: key invalidated")
	ErrEvicted     = errors.New("loader: key evicted")
)
