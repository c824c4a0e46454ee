package grid

import (
	"slices"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Snapshot is an independent copy of a grid's cells.
// The zero Snapshot is empty and restores to a 0 × 0 grid.
type Snapshot struct {
	width  int
	height int
	cells  []tile.ID
}

// Width returns the snapshot's column count.
func (s Snapshot) Width() int {
	return s.width
}

// Height returns the snapshot's row count.
func (s Snapshot) Height() int {
	return s.height
}

// At returns the identifier stored at (x, y) in the snapshot.
func (s Snapshot) At(x, y int) (tile.ID, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return tile.Void, false
	}
	return s.cells[y*s.width+x], true
}

// Equal reports whether two snapshots hold the same dimensions and cells.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.width == o.width && s.height == o.height && slices.Equal(s.cells, o.cells)
}

// Bytes returns the approximate memory held by the snapshot.
func (s Snapshot) Bytes() int {
	return len(s.cells) * 2
}

// Snapshot returns a deep copy of the grid's cells.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{
		width:  g.width,
		height: g.height,
		cells:  slices.Clone(g.cells),
	}
}

// Restore replaces the grid's cells with a copy of s, adopting its
// dimensions, marks the grid dirty and fires GridChanged.
func (g *Grid) Restore(s Snapshot) {
	g.width = s.width
	g.height = s.height
	g.cells = slices.Clone(s.cells)
	if g.cells == nil {
		g.cells = []tile.ID{}
	}
	g.dirty = true
	for _, slot := range g.listeners {
		slot.listener.GridChanged()
	}
}

// Equal reports whether the grid currently matches s.
func (g *Grid) Equal(s Snapshot) bool {
	return g.width == s.width && g.height == s.height && slices.Equal(g.cells, s.cells)
}
