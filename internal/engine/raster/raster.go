package raster

import (
	"slices"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// MaxCoord bounds the coordinates drawing operations accept. Shapes with a
// coordinate or radius beyond it are not drawn.
const MaxCoord = 1 << 30

func inRange(vals ...int) bool {
	for _, v := range vals {
		if v < -MaxCoord || v > MaxCoord {
			return false
		}
	}
	return true
}

// Point stamps brush centred on (x, y) and returns the number of cells
// changed. Brush cells outside the grid are dropped.
func Point(g *grid.Grid, x, y int, id tile.ID, brush Brush, r Resolver) int {
	if !inRange(x, y) {
		return 0
	}
	switch brush.Kind() {
	case BrushMask:
		changed := 0
		for _, o := range brush.Offsets() {
			if set(g, x+o.DX, y+o.DY, id, r) {
				changed++
			}
		}
		return changed
	case BrushSquare:
		size := brush.Size()
		if size <= 1 {
			if set(g, x, y, id, r) {
				return 1
			}
			return 0
		}
		half := size / 2
		area := grid.NewRect(x-half, y-half, x+half, y+half)
		if IsIdentity(r) {
			return g.Fill(area, id)
		}
		area, ok := area.Clip(g.Width(), g.Height())
		if !ok {
			return 0
		}
		changed := 0
		for cy := area.Y0; cy <= area.Y1; cy++ {
			for cx := area.X0; cx <= area.X1; cx++ {
				if set(g, cx, cy, id, r) {
					changed++
				}
			}
		}
		return changed
	default:
		return 0
	}
}

// set writes one resolved cell.
func set(g *grid.Grid, x, y int, id tile.ID, r Resolver) bool {
	if !g.InBounds(x, y) {
		return false
	}
	if r != nil {
		id = r.Resolve(x, y, id)
	}
	return g.Set(x, y, id)
}

// Line stamps brush at every point of the line from (x0, y0) to (x1, y1).
// Points whose stamp cannot reach the grid are skipped without being
// visited.
func Line(g *grid.Grid, x0, y0, x1, y1 int, id tile.ID, brush Brush, r Resolver) int {
	if !inRange(x0, y0, x1, y1) {
		return 0
	}
	reach := brush.reach()
	clip := grid.NewRect(-reach, -reach, g.Width()-1+reach, g.Height()-1+reach)
	changed := 0
	walkLine(x0, y0, x1, y1, clip, func(x, y int) {
		changed += Point(g, x, y, id, brush, r)
	})
	return changed
}

// LinePoints returns the Bresenham line from (x0, y0) to (x1, y1),
// both ends included. The same cells are produced whichever end is given
// first; only the order differs. It returns nil when a coordinate is
// beyond MaxCoord.
func LinePoints(x0, y0, x1, y1 int) []grid.Point {
	if !inRange(x0, y0, x1, y1) {
		return nil
	}
	pts := make([]grid.Point, 0, max(abs(x1-x0), abs(y1-y0))+1)
	walkLine(x0, y0, x1, y1, grid.NewRect(-MaxCoord, -MaxCoord, MaxCoord, MaxCoord), func(x, y int) {
		pts = append(pts, grid.Point{X: x, Y: y})
	})
	return pts
}

// walkLine visits the Bresenham points from (x0, y0) to (x1, y1) in order,
// skipping those whose major-axis coordinate lies outside clip.
//
// The line is always traced from its leftmost end so both directions cover
// the same cells. The major coordinate advances by one per step and the
// minor offset after k steps is (2*dMin*k + dMaj - 1) / (2*dMaj), which
// lets the walk start and stop at the clip edges.
func walkLine(x0, y0, x1, y1 int, clip grid.Rect, visit func(x, y int)) {
	reversed := x1 < x0 || (x1 == x0 && y1 < y0)
	if reversed {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	dx, dy := abs(x1-x0), abs(y1-y0)

	xMajor := dx >= dy
	maj0, min0, majStep, minStep := x0, y0, sx, sy
	dMaj, dMin := uint64(dx), uint64(dy)
	lo, hi := clip.X0, clip.X1
	if !xMajor {
		maj0, min0, majStep, minStep = y0, x0, sy, sx
		dMaj, dMin = uint64(dy), uint64(dx)
		lo, hi = clip.Y0, clip.Y1
	}

	kLo, kHi := lo-maj0, hi-maj0
	if majStep < 0 {
		kLo, kHi = maj0-hi, maj0-lo
	}
	kLo, kHi = max(kLo, 0), min(kHi, int(dMaj))
	if kLo > kHi {
		return
	}

	at := func(k int) {
		var m int
		if dMaj > 0 {
			m = int((2*dMin*uint64(k) + dMaj - 1) / (2 * dMaj))
		}
		maj, mn := maj0+majStep*k, min0+minStep*m
		if xMajor {
			visit(maj, mn)
		} else {
			visit(mn, maj)
		}
	}
	if reversed {
		for k := kHi; k >= kLo; k-- {
			at(k)
		}
		return
	}
	for k := kLo; k <= kHi; k++ {
		at(k)
	}
}

// Rect draws the rectangle with corners (x0, y0) and (x1, y1).
// A filled rectangle is written in one bulk operation and ignores the
// brush; an outline stamps the brush along the perimeter.
func Rect(g *grid.Grid, x0, y0, x1, y1 int, id tile.ID, brush Brush, r Resolver, filled bool) int {
	if !inRange(x0, y0, x1, y1) {
		return 0
	}
	area := grid.NewRect(x0, y0, x1, y1)
	if filled {
		if IsIdentity(r) {
			return g.Fill(area, id)
		}
		return g.FillFunc(area, func(x, y int) tile.ID {
			return r.Resolve(x, y, id)
		})
	}
	reach := brush.reach()
	clip := grid.NewRect(-reach, -reach, g.Width()-1+reach, g.Height()-1+reach)
	changed := 0
	walkRectOutline(area, clip, func(x, y int) {
		changed += Point(g, x, y, id, brush, r)
	})
	return changed
}

// RectOutlinePoints returns the perimeter of r: the top row, the bottom
// row, then the left and right columns without the corners.
func RectOutlinePoints(r grid.Rect) []grid.Point {
	if r.Empty() || !inRange(r.X0, r.Y0, r.X1, r.Y1) {
		return nil
	}
	pts := make([]grid.Point, 0, 2*(r.Width()+r.Height()))
	walkRectOutline(r, r, func(x, y int) {
		pts = append(pts, grid.Point{X: x, Y: y})
	})
	return pts
}

// walkRectOutline visits the perimeter of r in RectOutlinePoints order,
// skipping cells outside clip.
func walkRectOutline(r, clip grid.Rect, visit func(x, y int)) {
	if r.Empty() {
		return
	}
	xLo, xHi := max(r.X0, clip.X0), min(r.X1, clip.X1)
	row := func(y int) {
		if y < clip.Y0 || y > clip.Y1 {
			return
		}
		for x := xLo; x <= xHi; x++ {
			visit(x, y)
		}
	}
	row(r.Y0)
	if r.Y1 != r.Y0 {
		row(r.Y1)
	}
	left := r.X0 >= clip.X0 && r.X0 <= clip.X1
	right := r.X1 != r.X0 && r.X1 >= clip.X0 && r.X1 <= clip.X1
	for y := max(r.Y0+1, clip.Y0); y <= min(r.Y1-1, clip.Y1); y++ {
		if left {
			visit(r.X0, y)
		}
		if right {
			visit(r.X1, y)
		}
	}
}

// Circle draws a circle of the given radius around (cx, cy).
// A filled circle is written as one masked bulk operation and ignores the
// brush; an outline stamps the brush on every midpoint-circle point.
// Negative radii are treated as zero, which draws the centre cell.
func Circle(g *grid.Grid, cx, cy, radius int, id tile.ID, brush Brush, r Resolver, filled bool) int {
	radius = max(radius, 0)
	if !inRange(cx, cy, radius) {
		return 0
	}
	if filled {
		area, mask, ok := clippedDisk(cx, cy, radius, g.Width(), g.Height())
		if !ok {
			return 0
		}
		if IsIdentity(r) {
			return g.FillMask(area.X0, area.Y0, mask, id)
		}
		return g.FillMaskFunc(area.X0, area.Y0, mask, func(x, y int) tile.ID {
			return r.Resolve(x, y, id)
		})
	}
	changed := 0
	walkCircle(cx, cy, radius, func(x, y int) {
		changed += Point(g, x, y, id, brush, r)
	})
	return changed
}

// DiskMask returns the (2r+1) × (2r+1) mask of cells within radius of the
// centre, inclusive.
func DiskMask(radius int) [][]bool {
	radius = max(radius, 0)
	_, mask, _ := clippedDisk(radius, radius, radius, 2*radius+1, 2*radius+1)
	return mask
}

// clippedDisk returns the part of the disk around (cx, cy) that falls in a
// width × height grid, as the covered rectangle and its mask.
func clippedDisk(cx, cy, radius, width, height int) (grid.Rect, [][]bool, bool) {
	area, ok := grid.NewRect(cx-radius, cy-radius, cx+radius, cy+radius).Clip(width, height)
	if !ok {
		return grid.Rect{}, nil, false
	}
	r2 := radius * radius
	mask := make([][]bool, area.Height())
	for y := range mask {
		mask[y] = make([]bool, area.Width())
		dy := area.Y0 + y - cy
		for x := range mask[y] {
			dx := area.X0 + x - cx
			mask[y][x] = dx*dx+dy*dy <= r2
		}
	}
	return area, mask, true
}

// CirclePoints returns the midpoint-circle outline, each cell once.
func CirclePoints(cx, cy, radius int) []grid.Point {
	var pts []grid.Point
	walkCircle(cx, cy, max(radius, 0), func(x, y int) {
		pts = append(pts, grid.Point{X: x, Y: y})
	})
	return pts
}

// walkCircle visits the midpoint-circle outline, each cell once.
// The eight reflections of one step are the only points that can repeat.
func walkCircle(cx, cy, radius int, visit func(x, y int)) {
	var step [8]grid.Point
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		step = [8]grid.Point{
			{X: cx + x, Y: cy + y},
			{X: cx + y, Y: cy + x},
			{X: cx - y, Y: cy + x},
			{X: cx - x, Y: cy + y},
			{X: cx - x, Y: cy - y},
			{X: cx - y, Y: cy - x},
			{X: cx + y, Y: cy - x},
			{X: cx + x, Y: cy - y},
		}
		for i, p := range step {
			if !slices.Contains(step[:i], p) {
				visit(p.X, p.Y)
			}
		}

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
