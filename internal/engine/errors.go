package engine

import "errors"

// Errors returned by editor operations.
var (
	// ErrInvalidSize indicates a map dimension outside 1..MaxSize.
	ErrInvalidSize = errors.New("invalid map size")

	// ErrGestureActive indicates BeginGesture was called during a gesture.
	ErrGestureActive = errors.New("gesture already in progress")

	// ErrNoGesture indicates EndGesture was called without a gesture.
	ErrNoGesture = errors.New("no gesture in progress")
)
