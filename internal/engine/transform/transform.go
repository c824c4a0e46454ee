// Package transform rotates, flips and shifts tile regions.
//
// The pure functions operate on row slices and always return new rows.
// The grid variants read the affected area into a copy, transform it and
// write it back in one pass, so each call fires a single change
// notification.
package transform

import (
	"slices"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Axis selects the flip direction.
type Axis int

const (
	// Horizontal mirrors left to right.
	Horizontal Axis = iota

	// Vertical mirrors top to bottom.
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Rotate90 rotates rows clockwise. An h × w input becomes w × h with
// result[x][h-1-y] = rows[y][x]. Rows are assumed to be the same length.
func Rotate90(rows [][]tile.ID) [][]tile.ID {
	h := len(rows)
	if h == 0 || len(rows[0]) == 0 {
		return nil
	}
	w := len(rows[0])
	out := make([][]tile.ID, w)
	for x := range out {
		out[x] = make([]tile.ID, h)
	}
	for y, row := range rows {
		for x, id := range row {
			out[x][h-1-y] = id
		}
	}
	return out
}

// FlipH reverses each row.
func FlipH(rows [][]tile.ID) [][]tile.ID {
	out := make([][]tile.ID, len(rows))
	for y, row := range rows {
		out[y] = slices.Clone(row)
		slices.Reverse(out[y])
	}
	return out
}

// FlipV reverses the row order.
func FlipV(rows [][]tile.ID) [][]tile.ID {
	out := make([][]tile.ID, len(rows))
	for y, row := range rows {
		out[len(rows)-1-y] = slices.Clone(row)
	}
	return out
}

// Flip mirrors rows along axis.
func Flip(rows [][]tile.ID, axis Axis) [][]tile.ID {
	if axis == Vertical {
		return FlipV(rows)
	}
	return FlipH(rows)
}

// Shift moves every cell by (dx, dy) with wrap-around, so content leaving
// one edge re-enters at the opposite edge. dx and dy are clamped to -1..1.
func Shift(rows [][]tile.ID, dx, dy int) [][]tile.ID {
	h := len(rows)
	if h == 0 {
		return nil
	}
	w := len(rows[0])
	dx, dy = clampUnit(dx), clampUnit(dy)
	out := make([][]tile.ID, h)
	for y := range out {
		out[y] = make([]tile.ID, w)
	}
	for y, row := range rows {
		ny := mod(y+dy, h)
		for x, id := range row {
			out[ny][mod(x+dx, w)] = id
		}
	}
	return out
}

// RotateRegion rotates the cells of r clockwise about the centre of r and
// returns the rectangle the rotated block now occupies. Odd size differences
// truncate toward zero, so four turns bring the block back to r. Cells of r left
// uncovered by the rotated block become tile.Void; parts of the block that
// fall outside the grid are dropped.
func RotateRegion(g *grid.Grid, r grid.Rect) grid.Rect {
	src, ok := r.Clip(g.Width(), g.Height())
	if !ok {
		return r
	}
	rotated := Rotate90(g.Region(src))
	dst := grid.RectAt(
		src.X0+(src.Width()-src.Height())/2,
		src.Y0+(src.Height()-src.Width())/2,
		src.Height(),
		src.Width(),
	)

	union := grid.NewRect(min(src.X0, dst.X0), min(src.Y0, dst.Y0), max(src.X1, dst.X1), max(src.Y1, dst.Y1))
	area, _ := union.Clip(g.Width(), g.Height())
	buf := g.Region(area)
	for y := src.Y0; y <= src.Y1; y++ {
		for x := src.X0; x <= src.X1; x++ {
			buf[y-area.Y0][x-area.X0] = tile.Void
		}
	}
	for y, row := range rotated {
		for x, id := range row {
			gx, gy := dst.X0+x, dst.Y0+y
			if area.Contains(gx, gy) {
				buf[gy-area.Y0][gx-area.X0] = id
			}
		}
	}
	g.SetRegion(area.X0, area.Y0, buf)
	return dst
}

// FlipRegion mirrors the cells of r along axis.
func FlipRegion(g *grid.Grid, r grid.Rect, axis Axis) {
	c, ok := r.Clip(g.Width(), g.Height())
	if !ok {
		return
	}
	g.SetRegion(c.X0, c.Y0, Flip(g.Region(c), axis))
}

// ShiftRegion shifts the cells of r by (dx, dy), wrapping within r.
func ShiftRegion(g *grid.Grid, r grid.Rect, dx, dy int) {
	c, ok := r.Clip(g.Width(), g.Height())
	if !ok {
		return
	}
	g.SetRegion(c.X0, c.Y0, Shift(g.Region(c), dx, dy))
}

// RotateGrid returns a new grid holding g rotated clockwise, with width and
// height swapped. g is not modified.
func RotateGrid(g *grid.Grid) *grid.Grid {
	return grid.FromRows(Rotate90(g.Rows()))
}

// FlipGrid mirrors the whole grid along axis.
func FlipGrid(g *grid.Grid, axis Axis) {
	FlipRegion(g, g.Bounds(), axis)
}

// ShiftGrid shifts the whole grid by (dx, dy) with wrap-around.
func ShiftGrid(g *grid.Grid, dx, dy int) {
	ShiftRegion(g, g.Bounds(), dx, dy)
}

func clampUnit(n int) int {
	return max(-1, min(1, n))
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

