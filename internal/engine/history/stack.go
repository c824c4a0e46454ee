package history

import (
	"sync"

	"github.com/dshills/tilesmith/internal/engine/grid"
)

// DefaultMaxEntries is the capacity used when none is given.
const DefaultMaxEntries = 100

// History manages the undo and redo stacks of grid snapshots.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Configuration
	maxEntries int
}

// NewHistory creates a history holding at most maxEntries snapshots per stack.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push records a pre-edit snapshot and clears the redo stack.
func (h *History) Push(snap grid.Snapshot) {
	h.PushLabeled("", snap)
}

// PushLabeled records a pre-edit snapshot with a description of the edit
// about to happen. Clears the redo stack.
func (h *History) PushLabeled(label string, snap grid.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = h.appendBounded(h.undoStack, newEntry(label, snap))

	// Clear redo stack
	h.redoStack = nil
}

// appendBounded appends e and drops the oldest entries beyond capacity.
func (h *History) appendBounded(stack []*entry, e *entry) []*entry {
	stack = append(stack, e)
	if len(stack) > h.maxEntries {
		excess := len(stack) - h.maxEntries
		clear(stack[:excess])
		stack = stack[excess:]
	}
	return stack
}

// Undo returns the most recent pre-edit snapshot and stores current on the
// redo stack. ok is false, and nothing changes, if there is nothing to undo.
func (h *History) Undo(current grid.Snapshot) (prev grid.Snapshot, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return grid.Snapshot{}, false
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = nil
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.redoStack = h.appendBounded(h.redoStack, newEntry(e.label, current))
	return e.snapshot, true
}

// Redo returns the most recently undone state and stores current on the
// undo stack. ok is false, and nothing changes, if there is nothing to redo.
func (h *History) Redo(current grid.Snapshot) (next grid.Snapshot, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return grid.Snapshot{}, false
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = nil
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.undoStack = h.appendBounded(h.undoStack, newEntry(e.label, current))
	return e.snapshot, true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}

// UndoInfo returns info about available undo entries, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.undoStack)
}

// RedoInfo returns info about available redo entries, oldest first.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infos(h.redoStack)
}

func infos(stack []*entry) []EntryInfo {
	result := make([]EntryInfo, len(stack))
	for i, e := range stack {
		result[i] = e.info()
	}
	return result
}

// PeekUndo returns info about the next undo entry without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns info about the next redo entry without removing it.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// MemoryUsage returns the approximate bytes held by stored snapshots.
func (h *History) MemoryUsage() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := 0
	for _, e := range h.undoStack {
		total += e.snapshot.Bytes()
	}
	for _, e := range h.redoStack {
		total += e.snapshot.Bytes()
	}
	return total
}

// SetMaxEntries changes the maximum number of entries per stack.
// If a stack is larger, its oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		h.undoStack = h.undoStack[len(h.undoStack)-max:]
	}
	if len(h.redoStack) > max {
		h.redoStack = h.redoStack[len(h.redoStack)-max:]
	}
}

// MaxEntries returns the maximum number of entries per stack.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
