package script

import "errors"

// Errors for script runtime operations.
var (
	// ErrRuntimeClosed is returned when operating on a closed runtime.
	ErrRuntimeClosed = errors.New("script runtime is closed")

	// ErrUnknownEvent is returned when a script subscribes to an event
	// with no declared signature.
	ErrUnknownEvent = errors.New("unknown event")
)
