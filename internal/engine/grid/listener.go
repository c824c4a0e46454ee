package grid

import "github.com/dshills/tilesmith/internal/engine/tile"

// Listener receives grid change notifications.
type Listener interface {
	// CellChanged is called after Set changes a single cell.
	CellChanged(x, y int, id tile.ID)

	// RegionChanged is called once after a bulk write changed cells in r.
	RegionChanged(r Rect)

	// GridChanged is called after the whole grid was replaced.
	GridChanged()
}

// ListenerFuncs adapts optional functions to the Listener interface.
type ListenerFuncs struct {
	Cell   func(x, y int, id tile.ID)
	Region func(r Rect)
	Grid   func()
}

// CellChanged calls f.Cell if set.
func (f ListenerFuncs) CellChanged(x, y int, id tile.ID) {
	if f.Cell != nil {
		f.Cell(x, y, id)
	}
}

// RegionChanged calls f.Region if set.
func (f ListenerFuncs) RegionChanged(r Rect) {
	if f.Region != nil {
		f.Region(r)
	}
}

// GridChanged calls f.Grid if set.
func (f ListenerFuncs) GridChanged() {
	if f.Grid != nil {
		f.Grid()
	}
}

type listenerSlot struct {
	id       uint64
	listener Listener
}

// Subscription represents an attached listener.
type Subscription struct {
	id   uint64
	grid *Grid
}

// Unsubscribe detaches the listener. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.grid == nil {
		return
	}
	g := s.grid
	for i, slot := range g.listeners {
		if slot.id == s.id {
			g.listeners = append(g.listeners[:i:i], g.listeners[i+1:]...)
			break
		}
	}
	s.grid = nil
}
