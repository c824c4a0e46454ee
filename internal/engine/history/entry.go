package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tilesmith/internal/engine/grid"
)

// entry is one stored grid state.
type entry struct {
	id        uuid.UUID
	label     string
	snapshot  grid.Snapshot
	timestamp time.Time
}

func newEntry(label string, snap grid.Snapshot) *entry {
	return &entry{
		id:        uuid.New(),
		label:     label,
		snapshot:  snap,
		timestamp: time.Now(),
	}
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:        e.id,
		Label:     e.label,
		Timestamp: e.timestamp,
		Width:     e.snapshot.Width(),
		Height:    e.snapshot.Height(),
	}
}

// EntryInfo describes a history entry for display.
type EntryInfo struct {
	ID        uuid.UUID
	Label     string
	Timestamp time.Time
	Width     int
	Height    int
}
