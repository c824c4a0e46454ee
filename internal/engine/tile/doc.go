// Package tile provides the tile registry for the map engine.
//
// The registry maps single-character tile names to dense numeric tile
// identifiers and owns the metadata for each tile: display name, color and
// the movement and sight blocking flags.
//
// # Identifiers
//
// Identifiers are allocated from 1 upward at registration time. The zero
// value, Void, is reserved and means "no tile"; it is what IDOf returns for
// a character that is not bound, so callers never need to handle a lookup
// failure separately:
//
//	reg := tile.NewRegistry()
//	wall := reg.Register('#', "Wall", tile.Attrs{BlocksMovement: true})
//	reg.IDOf('#') // == wall
//	reg.Delete(wall)
//	reg.IDOf('#') // == tile.Void
//
// Re-registering an existing character keeps its identifier and overwrites
// every other field, so grids that already hold the identifier stay valid.
//
// # Change Notification
//
// Every mutation is reported synchronously to subscribers (render caches,
// UI lists) and handed to an optional Persister after the registry lock has
// been released.
package tile
