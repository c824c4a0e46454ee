// Package raster turns drawing gestures into grid writes.
//
// Every function takes a target tile, a Brush and an optional Resolver and
// writes through the grid's bounds-checked API, so shapes that run off the
// map are clipped cell by cell rather than rejected.
//
// # Brushes
//
// A Brush is either a uniform square of a given size or an explicit boolean
// mask. Point stamps the brush centred on the target cell; Line, the outline
// Rect and the outline Circle stamp it at every point they visit. Filled
// rectangles and circles ignore the brush and fill their area directly.
//
// # Resolvers
//
// A Resolver is consulted once per written cell with the cell's coordinates
// and the tile that would otherwise be written. It is the auto-tiling
// extension point. A nil Resolver means Identity, which enables the bulk
// write paths.
package raster
