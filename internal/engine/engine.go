package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/tilesmith/internal/engine/fill"
	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/history"
	"github.com/dshills/tilesmith/internal/engine/raster"
	"github.com/dshills/tilesmith/internal/engine/tile"
	"github.com/dshills/tilesmith/internal/engine/transform"
)

// Characters used when a cell has no printable tile.
const (
	VoidChar    = ' '
	UnknownChar = '?'
)

// Editor is the main tile map editing engine.
// It combines the tile registry, the grid and the undo history.
type Editor struct {
	registry *tile.Registry
	grid     *grid.Grid
	history  *history.History
	resolver raster.Resolver
	brush    raster.Brush
	logger   *slog.Logger

	gesture      bool
	gestureLabel string

	// Configuration
	initWidth      int
	initHeight     int
	fillChar       rune
	maxUndoEntries int
}

// New creates a new editor with the given options.
// The map is filled with the tile registered for the fill character, or
// with DefaultTile when that character is unknown.
func New(opts ...Option) *Editor {
	e := &Editor{
		initWidth:      DefaultWidth,
		initHeight:     DefaultHeight,
		fillChar:       DefaultFillChar,
		maxUndoEntries: DefaultMaxUndoEntries,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = tile.NewRegistry(tile.WithLogger(e.logger))
	}
	if e.resolver == nil {
		e.resolver = raster.Identity
	}

	e.grid = grid.New(e.initWidth, e.initHeight, e.fillTile())
	e.history = history.NewHistory(e.maxUndoEntries)
	return e
}

// ============================================================================
// Accessors
// ============================================================================

// Registry returns the tile registry.
func (e *Editor) Registry() *tile.Registry {
	return e.registry
}

// Grid returns the map. Mutating it directly bypasses the undo history.
func (e *Editor) Grid() *grid.Grid {
	return e.grid
}

// History returns the undo history.
func (e *Editor) History() *history.History {
	return e.history
}

// Width returns the map width.
func (e *Editor) Width() int {
	return e.grid.Width()
}

// Height returns the map height.
func (e *Editor) Height() int {
	return e.grid.Height()
}

// Get returns the tile at (x, y).
func (e *Editor) Get(x, y int) (tile.ID, bool) {
	return e.grid.Get(x, y)
}

// Brush returns the current brush.
func (e *Editor) Brush() raster.Brush {
	return e.brush
}

// SetBrush changes the brush used by drawing commands.
func (e *Editor) SetBrush(b raster.Brush) {
	e.brush = b
}

// Resolver returns the current auto-tile resolver.
func (e *Editor) Resolver() raster.Resolver {
	return e.resolver
}

// SetResolver changes the auto-tile resolver. Nil restores raster.Identity.
func (e *Editor) SetResolver(r raster.Resolver) {
	if r == nil {
		r = raster.Identity
	}
	e.resolver = r
}

// Subscribe registers a listener for grid changes.
func (e *Editor) Subscribe(l grid.Listener) *grid.Subscription {
	return e.grid.Subscribe(l)
}

// Dirty reports whether the map changed since the last MarkClean.
func (e *Editor) Dirty() bool {
	return e.grid.Dirty()
}

// MarkClean clears the dirty flag, typically after saving.
func (e *Editor) MarkClean() {
	e.grid.MarkClean()
}

// ============================================================================
// Tile Lookup
// ============================================================================

// DefaultTile returns the tile used when no specific one is requested:
// the floor tile '.' if registered, else the first registered tile,
// else identifier 1.
func (e *Editor) DefaultTile() tile.ID {
	if id := e.registry.IDOf('.'); id != tile.Void {
		return id
	}
	if defs := e.registry.All(); len(defs) > 0 {
		return defs[0].ID
	}
	return 1
}

// IDForChar returns the tile registered for char, or DefaultTile.
func (e *Editor) IDForChar(char rune) tile.ID {
	if id := e.registry.IDOf(char); id != tile.Void {
		return id
	}
	return e.DefaultTile()
}

func (e *Editor) fillTile() tile.ID {
	return e.IDForChar(e.fillChar)
}

// charOf maps an identifier to its display character.
func (e *Editor) charOf(id tile.ID) rune {
	if id == tile.Void {
		return VoidChar
	}
	if c, ok := e.registry.CharOf(id); ok {
		return c
	}
	return UnknownChar
}

// ============================================================================
// Edit Operations
// ============================================================================

// edit pushes the pre-edit snapshot, unless a gesture already did, and
// runs apply.
func (e *Editor) edit(label string, apply func() int) int {
	if !e.gesture {
		e.history.PushLabeled(label, e.grid.Snapshot())
	}
	n := apply()
	e.logger.Debug("edit", "op", label, "cells", n, "gesture", e.gesture)
	return n
}

// Place stamps the brush at (x, y).
func (e *Editor) Place(x, y int, id tile.ID) int {
	return e.edit("place", func() int {
		return raster.Point(e.grid, x, y, id, e.brush, e.resolver)
	})
}

// Line draws a line with the brush.
func (e *Editor) Line(x0, y0, x1, y1 int, id tile.ID) int {
	return e.edit("line", func() int {
		return raster.Line(e.grid, x0, y0, x1, y1, id, e.brush, e.resolver)
	})
}

// Rect draws a rectangle between two corners, outlined or filled.
func (e *Editor) Rect(x0, y0, x1, y1 int, id tile.ID, filled bool) int {
	return e.edit("rect", func() int {
		return raster.Rect(e.grid, x0, y0, x1, y1, id, e.brush, e.resolver, filled)
	})
}

// Circle draws a circle, outlined or filled.
func (e *Editor) Circle(cx, cy, radius int, id tile.ID, filled bool) int {
	return e.edit("circle", func() int {
		return raster.Circle(e.grid, cx, cy, radius, id, e.brush, e.resolver, filled)
	})
}

// Flood replaces the 4-connected region at (x, y) with id.
// Seeds outside the map or already holding id record nothing.
func (e *Editor) Flood(x, y int, id tile.ID) int {
	old, ok := e.grid.Get(x, y)
	if !ok || old == id {
		return 0
	}
	return e.edit("flood", func() int {
		return fill.FloodResolved(e.grid, x, y, id, e.resolver)
	})
}

// Clear fills the whole map with id.
func (e *Editor) Clear(id tile.ID) int {
	return e.edit("clear", func() int {
		return e.grid.Fill(e.grid.Bounds(), id)
	})
}

// RotateSelection rotates the selection 90 degrees clockwise about its
// centre and returns the rotated selection.
func (e *Editor) RotateSelection(sel grid.Rect) grid.Rect {
	var out grid.Rect
	e.edit("rotate selection", func() int {
		out = transform.RotateRegion(e.grid, sel)
		return out.Width() * out.Height()
	})
	return out
}

// FlipSelection mirrors the selection along axis.
func (e *Editor) FlipSelection(sel grid.Rect, axis transform.Axis) {
	e.edit("flip selection", func() int {
		transform.FlipRegion(e.grid, sel, axis)
		return sel.Width() * sel.Height()
	})
}

// ShiftSelection cyclically shifts the selection by one cell per axis.
func (e *Editor) ShiftSelection(sel grid.Rect, dx, dy int) {
	e.edit("shift selection", func() int {
		transform.ShiftRegion(e.grid, sel, dx, dy)
		return sel.Width() * sel.Height()
	})
}

// RotateMap rotates the whole map 90 degrees clockwise, swapping its
// dimensions.
func (e *Editor) RotateMap() {
	e.edit("rotate map", func() int {
		e.grid.Restore(transform.RotateGrid(e.grid).Snapshot())
		return e.grid.Width() * e.grid.Height()
	})
}

// FlipMap mirrors the whole map along axis.
func (e *Editor) FlipMap(axis transform.Axis) {
	e.edit("flip map", func() int {
		transform.FlipGrid(e.grid, axis)
		return e.grid.Width() * e.grid.Height()
	})
}

// ShiftMap cyclically shifts the whole map by one cell per axis.
func (e *Editor) ShiftMap(dx, dy int) {
	e.edit("shift map", func() int {
		transform.ShiftGrid(e.grid, dx, dy)
		return e.grid.Width() * e.grid.Height()
	})
}

// Resize changes the map dimensions, keeping the overlapping cells and
// filling new ones with the fill tile. Sizes outside 1..MaxSize fail with
// ErrInvalidSize.
func (e *Editor) Resize(width, height int) error {
	if width < 1 || height < 1 || width > MaxSize || height > MaxSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	e.edit("resize", func() int {
		e.grid.Restore(e.grid.Resize(width, height, e.fillTile()).Snapshot())
		return width * height
	})
	return nil
}

// ============================================================================
// Gestures
// ============================================================================

// BeginGesture starts a group of strokes undone as one step.
// The pre-gesture snapshot is pushed immediately.
func (e *Editor) BeginGesture(label string) error {
	if e.gesture {
		return ErrGestureActive
	}
	if label == "" {
		label = "gesture"
	}
	e.history.PushLabeled(label, e.grid.Snapshot())
	e.gesture = true
	e.gestureLabel = label
	return nil
}

// Stroke stamps the brush at (x, y) as part of the current gesture.
// Outside a gesture it behaves like Place.
func (e *Editor) Stroke(x, y int, id tile.ID) int {
	if !e.gesture {
		return e.Place(x, y, id)
	}
	return raster.Point(e.grid, x, y, id, e.brush, e.resolver)
}

// EndGesture finishes the current gesture.
func (e *Editor) EndGesture() error {
	if !e.gesture {
		return ErrNoGesture
	}
	e.logger.Debug("gesture ended", "label", e.gestureLabel)
	e.gesture = false
	e.gestureLabel = ""
	return nil
}

// InGesture reports whether a gesture is in progress.
func (e *Editor) InGesture() bool {
	return e.gesture
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo restores the state before the most recent edit.
// It ends any gesture in progress and reports whether anything was undone.
func (e *Editor) Undo() bool {
	e.gesture = false
	prev, ok := e.history.Undo(e.grid.Snapshot())
	if !ok {
		return false
	}
	e.grid.Restore(prev)
	return true
}

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() bool {
	e.gesture = false
	next, ok := e.history.Redo(e.grid.Snapshot())
	if !ok {
		return false
	}
	e.grid.Restore(next)
	return true
}

// CanUndo returns true if there are operations to undo.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if there are operations to redo.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of operations that can be undone.
func (e *Editor) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of operations that can be redone.
func (e *Editor) RedoCount() int {
	return e.history.RedoCount()
}

// ClearHistory removes all undo/redo history.
func (e *Editor) ClearHistory() {
	e.history.Clear()
}

// ============================================================================
// Loading and Export
// ============================================================================

// ReplaceGrid replaces the whole map, adopting the dimensions of rows.
// History is cleared and the map is marked clean. Listeners stay attached.
func (e *Editor) ReplaceGrid(rows [][]tile.ID) {
	e.gesture = false
	e.grid.Restore(grid.FromRows(rows).Snapshot())
	e.history.Clear()
	e.grid.MarkClean()
}

// LoadChars replaces the map from text lines, one character per cell.
// Short lines are padded with Void; unregistered characters become Void.
func (e *Editor) LoadChars(lines []string) {
	rows := make([][]tile.ID, len(lines))
	for y, line := range lines {
		for _, c := range line {
			rows[y] = append(rows[y], e.registry.IDOf(c))
		}
	}
	e.ReplaceGrid(rows)
}

// Chars renders the map as text lines, one character per cell.
func (e *Editor) Chars() []string {
	lines := make([]string, 0, e.grid.Height())
	var sb strings.Builder
	for _, row := range e.grid.Rows() {
		sb.Reset()
		for _, id := range row {
			sb.WriteRune(e.charOf(id))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Stats returns the number of cells per tile character.
// Void cells count under VoidChar and unregistered ones under UnknownChar.
func (e *Editor) Stats() map[rune]int {
	stats := make(map[rune]int)
	for id, n := range e.grid.Count() {
		stats[e.charOf(id)] += n
	}
	return stats
}
