package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownCommand indicates a command name that is not recognised.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArguments indicates a command with missing or malformed arguments.
	ErrBadArguments = errors.New("bad arguments")

	// ErrUnknownTile indicates a tile character missing from the palette.
	ErrUnknownTile = errors.New("unknown tile")

	// ErrNoMapPath indicates save was requested without a destination.
	ErrNoMapPath = errors.New("no map path")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "load", "save", "autotile")
	Target string // Target of the operation (e.g., file path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CommandError reports a failed command with its position in the input.
type CommandError struct {
	Line    int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
