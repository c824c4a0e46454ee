package engine

import (
	"log/slog"

	"github.com/dshills/tilesmith/internal/engine/raster"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Default configuration values.
const (
	DefaultWidth          = 40
	DefaultHeight         = 30
	DefaultFillChar       = '.'
	DefaultMaxUndoEntries = 100

	// MaxSize is the largest map width or height.
	MaxSize = 4096
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithSize sets the initial map dimensions.
func WithSize(width, height int) Option {
	return func(e *Editor) {
		if width > 0 && height > 0 && width <= MaxSize && height <= MaxSize {
			e.initWidth = width
			e.initHeight = height
		}
	}
}

// WithFillChar sets the character of the tile a new map is filled with.
func WithFillChar(char rune) Option {
	return func(e *Editor) {
		e.fillChar = char
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithRegistry uses an existing tile registry.
func WithRegistry(reg *tile.Registry) Option {
	return func(e *Editor) {
		if reg != nil {
			e.registry = reg
		}
	}
}

// WithResolver sets the auto-tile resolver used by drawing commands.
func WithResolver(r raster.Resolver) Option {
	return func(e *Editor) {
		e.resolver = r
	}
}

// WithBrush sets the initial brush.
func WithBrush(b raster.Brush) Option {
	return func(e *Editor) {
		e.brush = b
	}
}

// WithLogger sets the logger for edit tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}
