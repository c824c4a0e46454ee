// Package history provides snapshot-based undo/redo for the map engine.
//
// Every entry is a full grid.Snapshot taken before an edit. Callers decide
// where an edit boundary falls and push the pre-edit state before mutating:
//
//	h := history.NewHistory(100)
//
//	h.PushLabeled("Flood fill", g.Snapshot())
//	fill.Flood(g, x, y, water)
//
//	if prev, ok := h.Undo(g.Snapshot()); ok {
//	    g.Restore(prev)
//	}
//
// Undo moves the current state onto the redo stack, Redo moves it back.
// Any Push clears the redo stack, so history never branches. Both stacks
// are bounded; the oldest entry is evicted when a stack is full.
//
// A multi-step gesture such as dragging out a line should push once, at
// gesture start, not once per cell.
package history
