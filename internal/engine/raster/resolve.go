package raster

import "github.com/dshills/tilesmith/internal/engine/tile"

// Resolver picks the tile actually written at (x, y) when base is drawn there.
type Resolver interface {
	Resolve(x, y int, base tile.ID) tile.ID
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(x, y int, base tile.ID) tile.ID

// Resolve calls f(x, y, base).
func (f ResolverFunc) Resolve(x, y int, base tile.ID) tile.ID {
	return f(x, y, base)
}

type identity struct{}

func (identity) Resolve(_, _ int, base tile.ID) tile.ID {
	return base
}

// Identity writes the base tile unchanged.
var Identity Resolver = identity{}

// IsIdentity reports whether r leaves every tile unchanged.
func IsIdentity(r Resolver) bool {
	if r == nil {
		return true
	}
	_, ok := r.(identity)
	return ok
}
