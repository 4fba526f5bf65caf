package operation

import "errors"

var (
	ErrAlreadyStarted = errors.New("operation: already started")
	ErrAlreadyAborted = errors.New("operation: aborted before start")
	ErrTimeout        = errors.New("operation: timed out")
	ErrExternalAbort  = errors.New("operation: cancelled by caller")
	ErrAborted        = errors.New("operation: aborted")
)
