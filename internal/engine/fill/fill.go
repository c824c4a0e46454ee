// Package fill implements 4-connected flood fill over a tile grid.
package fill

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/raster"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

var neighbours = [4]grid.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Flood replaces the 4-connected region of equal tiles containing (x, y)
// with id and returns the number of cells written. Filling a region with
// the tile it already holds, or starting outside the grid, does nothing.
func Flood(g *grid.Grid, x, y int, id tile.ID) int {
	return FloodResolved(g, x, y, id, nil)
}

// FloodResolved is Flood with each written cell passed through r.
func FloodResolved(g *grid.Grid, x, y int, id tile.ID, r raster.Resolver) int {
	old, ok := g.Get(x, y)
	if !ok || old == id {
		return 0
	}
	written := 0
	walk(g, x, y, old, func(p grid.Point) {
		v := id
		if r != nil {
			v = r.Resolve(p.X, p.Y, id)
		}
		g.Set(p.X, p.Y, v)
		written++
	})
	return written
}

// Region returns the cells of the 4-connected region of equal tiles
// containing (x, y) in breadth-first order, without modifying the grid.
func Region(g *grid.Grid, x, y int) []grid.Point {
	target, ok := g.Get(x, y)
	if !ok {
		return nil
	}
	var pts []grid.Point
	walk(g, x, y, target, func(p grid.Point) {
		pts = append(pts, p)
	})
	return pts
}

// walk visits the region breadth first. Each candidate is tested against
// the live grid exactly once, before it is enqueued; visit runs when a cell
// is dequeued and may overwrite it.
func walk(g *grid.Grid, x, y int, target tile.ID, visit func(p grid.Point)) {
	start := grid.Point{X: x, Y: y}
	visited := mapset.New[grid.Point]()
	visited.Put(start)
	q := queue.New[grid.Point]()
	q.Enqueue(start)

	for !q.Empty() {
		p := q.Dequeue()
		visit(p)
		for _, d := range neighbours {
			n := grid.Point{X: p.X + d.X, Y: p.Y + d.Y}
			if visited.Has(n) {
				continue
			}
			if v, ok := g.Get(n.X, n.Y); !ok || v != target {
				continue
			}
			visited.Put(n)
			q.Enqueue(n)
		}
	}
}
