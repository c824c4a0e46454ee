package autotile

import "github.com/dshills/tilesmith/internal/engine/tile"

// Neighbour bits of the membership mask.
const (
	North = 1 << iota
	East
	South
	West
)

// Reader is the read side of a tile grid.
type Reader interface {
	Get(x, y int) (tile.ID, bool)
}

// NeighbourMask returns the mask of orthogonal neighbours of (x, y) for
// which member reports true. Cells outside the grid never match.
func NeighbourMask(r Reader, x, y int, member func(tile.ID) bool) int {
	mask := 0
	probe := [4]struct {
		dx, dy, bit int
	}{
		{0, -1, North},
		{1, 0, East},
		{0, 1, South},
		{-1, 0, West},
	}
	for _, p := range probe {
		if id, ok := r.Get(x+p.dx, y+p.dy); ok && member(id) {
			mask |= p.bit
		}
	}
	return mask
}
