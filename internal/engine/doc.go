// Package engine provides the tile map editor core for tilesmith.
//
// The engine package serves as the main facade, combining the tile registry,
// the grid store, snapshot-based undo/redo and the drawing tools into a
// single Editor.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - tile: tile definitions and the registry that assigns identifiers
//   - grid: the rectangular cell store with change notification
//   - history: bounded undo/redo stacks of grid snapshots
//   - raster: point, line, rectangle and circle drawing with brushes
//   - fill: 4-connected flood fill
//   - transform: rotate, flip and shift of regions and whole maps
//   - autotile: resolvers that pick tile variants from neighbours
//
// # Undo Model
//
// Every editing command captures the grid before mutating it and pushes
// that snapshot onto the history. A gesture groups many strokes behind a
// single snapshot taken when the gesture begins:
//
//	e := engine.New(engine.WithSize(20, 10))
//	wall := e.IDForChar('#')
//
//	e.BeginGesture("paint")
//	e.Stroke(1, 1, wall)
//	e.Stroke(2, 1, wall)
//	e.EndGesture()
//
//	e.Undo() // both strokes are reverted
//
// # Thread Safety
//
// An Editor is not safe for concurrent use. The registry it holds is, so a
// palette watcher may reload tile definitions from another goroutine.
package engine
