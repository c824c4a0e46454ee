package history

import (
	"testing"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// snap returns a 1x1 snapshot holding id.
func snap(id tile.ID) grid.Snapshot {
	return grid.New(1, 1, id).Snapshot()
}

func valueOf(t *testing.T, s grid.Snapshot) tile.ID {
	t.Helper()
	id, ok := s.At(0, 0)
	if !ok {
		t.Fatal("snapshot is empty")
	}
	return id
}

func TestNewHistoryDefaults(t *testing.T) {
	if got := NewHistory(0).MaxEntries(); got != DefaultMaxEntries {
		t.Errorf("MaxEntries() = %d, want %d", got, DefaultMaxEntries)
	}
	if got := NewHistory(5).MaxEntries(); got != 5 {
		t.Errorf("MaxEntries() = %d, want 5", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	g := grid.New(3, 3, 1)
	h := NewHistory(10)

	g0 := g.Snapshot()
	h.Push(g0)
	g.Set(1, 1, 2)
	g1 := g.Snapshot()

	prev, ok := h.Undo(g1)
	if !ok {
		t.Fatal("Undo failed")
	}
	if !prev.Equal(g0) {
		t.Error("undo did not return G0")
	}

	next, ok := h.Redo(g0)
	if !ok {
		t.Fatal("Redo failed")
	}
	if !next.Equal(g1) {
		t.Error("redo did not return G1")
	}
}

func TestUndoEmpty(t *testing.T) {
	h := NewHistory(10)
	if _, ok := h.Undo(snap(1)); ok {
		t.Error("Undo on empty history succeeded")
	}
	if h.RedoCount() != 0 {
		t.Error("failed undo touched the redo stack")
	}
	if _, ok := h.Redo(snap(1)); ok {
		t.Error("Redo on empty history succeeded")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(snap(1))
	h.Undo(snap(2))
	if !h.CanRedo() {
		t.Fatal("expected redo after undo")
	}

	h.Push(snap(3))
	if h.CanRedo() {
		t.Error("push did not clear redo")
	}
}

func TestEviction(t *testing.T) {
	const capacity = 3
	h := NewHistory(capacity)
	for i := 1; i <= capacity+1; i++ {
		h.Push(snap(tile.ID(i)))
	}
	if h.UndoCount() != capacity {
		t.Fatalf("UndoCount() = %d, want %d", h.UndoCount(), capacity)
	}

	var seen []tile.ID
	for {
		prev, ok := h.Undo(snap(99))
		if !ok {
			break
		}
		seen = append(seen, valueOf(t, prev))
	}
	want := []tile.ID{4, 3, 2}
	if len(seen) != len(want) {
		t.Fatalf("undone %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("undo %d = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory(10)
	cur := snap(1)
	for i := 2; i <= 4; i++ {
		h.Push(cur)
		cur = snap(tile.ID(i))
	}

	for _, want := range []tile.ID{3, 2, 1} {
		prev, ok := h.Undo(cur)
		if !ok {
			t.Fatal("undo failed")
		}
		if got := valueOf(t, prev); got != want {
			t.Errorf("undo = %d, want %d", got, want)
		}
		cur = prev
	}
	if h.CanUndo() {
		t.Error("undo stack should be empty")
	}
	for _, want := range []tile.ID{2, 3, 4} {
		next, ok := h.Redo(cur)
		if !ok {
			t.Fatal("redo failed")
		}
		if got := valueOf(t, next); got != want {
			t.Errorf("redo = %d, want %d", got, want)
		}
		cur = next
	}
}

func TestLabelsAndInfo(t *testing.T) {
	h := NewHistory(10)
	h.PushLabeled("Line", snap(1))
	h.PushLabeled("Fill", snap(2))

	info, ok := h.PeekUndo()
	if !ok || info.Label != "Fill" {
		t.Errorf("PeekUndo() = %+v, %v", info, ok)
	}
	if info.Width != 1 || info.Height != 1 || info.Timestamp.IsZero() {
		t.Errorf("unexpected info %+v", info)
	}

	h.Undo(snap(3))
	redo, ok := h.PeekRedo()
	if !ok || redo.Label != "Fill" {
		t.Errorf("PeekRedo() = %+v, %v", redo, ok)
	}

	all := h.UndoInfo()
	if len(all) != 1 || all[0].Label != "Line" {
		t.Errorf("UndoInfo() = %+v", all)
	}
	if len(h.RedoInfo()) != 1 {
		t.Error("RedoInfo() should have one entry")
	}
	if all[0].ID == redo.ID {
		t.Error("entries should have distinct ids")
	}
}

func TestSetMaxEntriesTrims(t *testing.T) {
	h := NewHistory(10)
	for i := 1; i <= 5; i++ {
		h.Push(snap(tile.ID(i)))
	}
	h.SetMaxEntries(2)
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", h.UndoCount())
	}
	prev, _ := h.Undo(snap(9))
	if valueOf(t, prev) != 5 {
		t.Error("trim removed the newest entry")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory(10)
	h.Push(snap(1))
	h.Push(snap(2))
	h.Undo(snap(3))
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear left entries behind")
	}
	if h.MemoryUsage() != 0 {
		t.Errorf("MemoryUsage() = %d after Clear", h.MemoryUsage())
	}
}

func TestMemoryUsage(t *testing.T) {
	h := NewHistory(10)
	h.Push(grid.New(4, 4, 1).Snapshot())
	if got := h.MemoryUsage(); got != 32 {
		t.Errorf("MemoryUsage() = %d, want 32", got)
	}
}
