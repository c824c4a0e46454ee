// Package autotile provides resolvers that substitute tile variants based
// on neighbouring cells.
//
// Both strategies plug into the raster and fill packages as a
// raster.Resolver and are consulted once for each written cell. They look
// at the grid as it stands at that moment, so cells written later in the
// same stroke are not yet visible to earlier ones.
//
// # Neighbour Mask
//
// Neighbours are summarised as a 4-bit mask of the orthogonal cells that
// belong to the same tile family:
//
//	North = 1, East = 2, South = 4, West = 8
//
// # Rules
//
// Rules is a static table mapping a base tile and a mask to a variant.
//
// # Script
//
// Script runs a sandboxed Lua function for every cell:
//
//	function resolve(x, y, base, mask)
//	    if mask == 15 then return id("%") end
//	    return base
//	end
//
// The host exposes get(x, y), id(char) and char(id) to the script.
package autotile
