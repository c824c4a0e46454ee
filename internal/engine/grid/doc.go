// Package grid provides the fixed-size tile grid at the heart of the map engine.
//
// A Grid is a width × height array of tile identifiers with bounds-checked
// accessors. Out-of-range coordinates are never an error: Get reports
// ok=false and Set returns false, which lets the drawing algorithms emit
// points freely and rely on the grid to clip them.
//
// # Change Notification
//
// Writes that actually change a cell mark the grid dirty and notify
// subscribed listeners synchronously:
//
//   - Set fires CellChanged once per changed cell
//   - Fill, FillFunc, FillMask and SetRegion fire a single RegionChanged
//   - Restore fires GridChanged
//
// Bulk writes deliberately do not report individual cells. Listeners must
// not call mutating Grid methods from inside a callback.
//
// # Snapshots
//
// Snapshot returns a deep copy of the cells. Later writes to the grid never
// show through a snapshot, and Restore copies the snapshot back in, so a
// snapshot may be restored more than once.
//
// A Grid is not safe for concurrent use.
package grid
