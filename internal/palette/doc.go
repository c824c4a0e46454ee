// Package palette stores tile definitions on disk.
//
// A palette file is TOML or YAML, chosen by extension, and holds one entry
// per tile:
//
//	[[tiles]]
//	id = 2
//	char = "#"
//	name = "Wall"
//	color = "#c0c0c0"
//	blocks_movement = true
//	blocks_sight = true
//
// A Store plugs into a tile.Registry as its Persister, so every registry
// mutation rewrites the file. Watch reloads the registry when the file is
// edited externally.
package palette
