package grid

import (
	"slices"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Grid is a fixed-size, row-major array of tile identifiers.
type Grid struct {
	width  int
	height int
	cells  []tile.ID
	dirty  bool

	listeners  []listenerSlot
	nextSlotID uint64
}

// New creates a width × height grid with every cell set to fill.
// Negative dimensions are treated as zero.
func New(width, height int, fill tile.ID) *Grid {
	width, height = max(width, 0), max(height, 0)
	cells := make([]tile.ID, width*height)
	if fill != tile.Void {
		for i := range cells {
			cells[i] = fill
		}
	}
	return &Grid{width: width, height: height, cells: cells}
}

// FromRows creates a grid from row-major data. The width is the length of
// the longest row; short rows are padded with tile.Void. The rows are copied.
func FromRows(rows [][]tile.ID) *Grid {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	g := New(width, len(rows), tile.Void)
	for y, row := range rows {
		copy(g.cells[y*width:], row)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Bounds returns the rectangle covering the whole grid.
func (g *Grid) Bounds() Rect {
	return RectAt(0, 0, g.width, g.height)
}

// InBounds returns true if (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Dirty returns true if the grid changed since the last MarkClean.
func (g *Grid) Dirty() bool {
	return g.dirty
}

// MarkClean clears the dirty flag, typically after a save.
func (g *Grid) MarkClean() {
	g.dirty = false
}

// Get returns the identifier at (x, y). ok is false outside the grid.
func (g *Grid) Get(x, y int) (id tile.ID, ok bool) {
	if !g.InBounds(x, y) {
		return tile.Void, false
	}
	return g.cells[y*g.width+x], true
}

// Set writes id at (x, y) and reports whether the cell changed.
// Out-of-range coordinates and writes of the current value are no-ops
// that neither dirty the grid nor notify listeners.
func (g *Grid) Set(x, y int, id tile.ID) bool {
	if !g.InBounds(x, y) {
		return false
	}
	i := y*g.width + x
	if g.cells[i] == id {
		return false
	}
	g.cells[i] = id
	g.dirty = true
	for _, slot := range g.listeners {
		slot.listener.CellChanged(x, y, id)
	}
	return true
}

// Fill writes id to every cell of r that lies inside the grid and returns
// the number of cells changed. Listeners get one RegionChanged covering the
// clipped rectangle if anything changed.
func (g *Grid) Fill(r Rect, id tile.ID) int {
	c, ok := r.Clip(g.width, g.height)
	if !ok {
		return 0
	}
	changed := 0
	for y := c.Y0; y <= c.Y1; y++ {
		row := g.cells[y*g.width+c.X0 : y*g.width+c.X1+1]
		for i := range row {
			if row[i] != id {
				row[i] = id
				changed++
			}
		}
	}
	g.regionChanged(c, changed)
	return changed
}

// FillFunc is Fill with a per-cell value, used when each written cell is
// resolved individually.
func (g *Grid) FillFunc(r Rect, value func(x, y int) tile.ID) int {
	c, ok := r.Clip(g.width, g.height)
	if !ok {
		return 0
	}
	changed := 0
	for y := c.Y0; y <= c.Y1; y++ {
		for x := c.X0; x <= c.X1; x++ {
			if g.put(x, y, value(x, y)) {
				changed++
			}
		}
	}
	g.regionChanged(c, changed)
	return changed
}

// FillMask writes id wherever mask is true. mask is indexed [row][col] and
// its top-left cell lands on (x0, y0).
func (g *Grid) FillMask(x0, y0 int, mask [][]bool, id tile.ID) int {
	return g.FillMaskFunc(x0, y0, mask, func(int, int) tile.ID { return id })
}

// FillMaskFunc is FillMask with a per-cell value.
func (g *Grid) FillMaskFunc(x0, y0 int, mask [][]bool, value func(x, y int) tile.ID) int {
	w := 0
	for _, row := range mask {
		w = max(w, len(row))
	}
	c, ok := RectAt(x0, y0, w, len(mask)).Clip(g.width, g.height)
	if !ok {
		return 0
	}
	changed := 0
	for y := c.Y0; y <= c.Y1; y++ {
		row := mask[y-y0]
		for x := c.X0; x <= c.X1; x++ {
			if x-x0 >= len(row) || !row[x-x0] {
				continue
			}
			if g.put(x, y, value(x, y)) {
				changed++
			}
		}
	}
	g.regionChanged(c, changed)
	return changed
}

// SetRegion copies rows into the grid with its top-left cell at (x0, y0),
// clipping at the grid edges. One RegionChanged is fired if anything changed.
func (g *Grid) SetRegion(x0, y0 int, rows [][]tile.ID) int {
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	c, ok := RectAt(x0, y0, w, len(rows)).Clip(g.width, g.height)
	if !ok {
		return 0
	}
	changed := 0
	for y := c.Y0; y <= c.Y1; y++ {
		row := rows[y-y0]
		for x := c.X0; x <= c.X1 && x-x0 < len(row); x++ {
			if g.put(x, y, row[x-x0]) {
				changed++
			}
		}
	}
	g.regionChanged(c, changed)
	return changed
}

// put writes a cell without notifying. The caller has checked bounds.
func (g *Grid) put(x, y int, id tile.ID) bool {
	i := y*g.width + x
	if g.cells[i] == id {
		return false
	}
	g.cells[i] = id
	return true
}

func (g *Grid) regionChanged(r Rect, changed int) {
	if changed == 0 {
		return
	}
	g.dirty = true
	for _, slot := range g.listeners {
		slot.listener.RegionChanged(r)
	}
}

// Region returns a copy of the cells in r, clipped to the grid, as rows.
// Returns nil if r lies entirely outside.
func (g *Grid) Region(r Rect) [][]tile.ID {
	c, ok := r.Clip(g.width, g.height)
	if !ok {
		return nil
	}
	rows := make([][]tile.ID, c.Height())
	for y := range rows {
		start := (c.Y0+y)*g.width + c.X0
		rows[y] = slices.Clone(g.cells[start : start+c.Width()])
	}
	return rows
}

// Rows returns a copy of the whole grid as rows.
func (g *Grid) Rows() [][]tile.ID {
	if g.width == 0 || g.height == 0 {
		return nil
	}
	return g.Region(g.Bounds())
}

// Count returns how many cells hold each identifier.
func (g *Grid) Count() map[tile.ID]int {
	counts := make(map[tile.ID]int)
	for _, id := range g.cells {
		counts[id]++
	}
	return counts
}

// Resize returns a new width × height grid holding this grid's content
// anchored at the top-left corner. Newly exposed cells are set to fill.
// The receiver is left untouched and the new grid has no listeners.
func (g *Grid) Resize(width, height int, fill tile.ID) *Grid {
	ng := New(width, height, fill)
	w, h := min(g.width, ng.width), min(g.height, ng.height)
	for y := 0; y < h; y++ {
		copy(ng.cells[y*ng.width:y*ng.width+w], g.cells[y*g.width:y*g.width+w])
	}
	ng.dirty = true
	return ng
}

// Subscribe attaches a listener. Listeners are called in subscription order.
func (g *Grid) Subscribe(l Listener) *Subscription {
	g.nextSlotID++
	g.listeners = append(g.listeners, listenerSlot{id: g.nextSlotID, listener: l})
	return &Subscription{id: g.nextSlotID, grid: g}
}
