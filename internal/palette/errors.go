package palette

import (
	"errors"
	"fmt"
)

// Errors returned by palette operations.
var (
	// ErrUnknownFormat indicates a palette path with an unsupported extension.
	ErrUnknownFormat = errors.New("unknown palette format")

	// ErrInvalidEntry indicates a tile entry that cannot become a definition.
	ErrInvalidEntry = errors.New("invalid palette entry")
)

// ParseError represents a palette parsing error.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
