package renderer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

func newSimScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func newTestEditor(width, height int) *engine.Editor {
	reg := tile.NewRegistry()
	reg.Register('.', "Floor", tile.Attrs{Color: tcell.ColorGray})
	reg.Register('#', "Wall", tile.Attrs{Color: tcell.ColorWhite, BlocksMovement: true})
	return engine.New(engine.WithRegistry(reg), engine.WithSize(width, height))
}

func runeAt(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r, style
}

func TestDraw(t *testing.T) {
	s := newSimScreen(t, 6, 4)
	e := newTestEditor(4, 2)
	wall := e.Registry().IDOf('#')
	e.Place(1, 0, wall)

	v := NewView(s, e)
	defer v.Close()
	v.Draw()

	if r, _ := runeAt(s, 0, 0); r != '.' {
		t.Errorf("(0,0) = %q, want '.'", r)
	}
	r, style := runeAt(s, 1, 0)
	if r != '#' {
		t.Errorf("(1,0) = %q, want '#'", r)
	}
	if fg, _, attrs := style.Decompose(); fg != tcell.ColorWhite || attrs&tcell.AttrBold == 0 {
		t.Errorf("wall style fg=%v attrs=%v, want bold white", fg, attrs)
	}
	if r, _ := runeAt(s, 5, 0); r != ' ' {
		t.Errorf("outside map = %q, want blank", r)
	}
	if r, _ := runeAt(s, 1, 3); r != '4' {
		t.Errorf("status line = %q, want map width", r)
	}
	if v.Dirty() {
		t.Error("view dirty after Draw")
	}
}

func TestDrawUnknownAndVoid(t *testing.T) {
	s := newSimScreen(t, 3, 2)
	e := newTestEditor(2, 1)
	e.Place(0, 0, tile.Void)
	e.Place(1, 0, 99)

	v := NewView(s, e)
	defer v.Close()
	v.Draw()

	if r, _ := runeAt(s, 0, 0); r != engine.VoidChar {
		t.Errorf("void = %q", r)
	}
	if r, _ := runeAt(s, 1, 0); r != engine.UnknownChar {
		t.Errorf("unknown = %q", r)
	}
}

func TestEditsMarkDirty(t *testing.T) {
	s := newSimScreen(t, 4, 3)
	e := newTestEditor(3, 2)
	v := NewView(s, e)
	v.Draw()

	e.Place(0, 0, e.Registry().IDOf('#'))
	if !v.Dirty() {
		t.Error("grid edit did not mark the view dirty")
	}
	v.Draw()
	e.Registry().Register('~', "Water", tile.Attrs{})
	if !v.Dirty() {
		t.Error("registry change did not mark the view dirty")
	}

	v.Close()
	v.Close()
	v.Draw()
	e.Undo()
	if v.Dirty() {
		t.Error("closed view still tracks edits")
	}
}

func TestScrollClamps(t *testing.T) {
	s := newSimScreen(t, 4, 4) // 3 map rows plus status
	e := newTestEditor(10, 5)
	v := NewView(s, e)
	defer v.Close()

	v.Scroll(100, 100)
	if x, y := v.Offset(); x != 6 || y != 2 {
		t.Errorf("offset = %d,%d, want 6,2", x, y)
	}
	v.Scroll(-100, -1)
	if x, y := v.Offset(); x != 0 || y != 1 {
		t.Errorf("offset = %d,%d, want 0,1", x, y)
	}
}

func TestHandleKey(t *testing.T) {
	s := newSimScreen(t, 4, 3)
	e := newTestEditor(3, 1)
	wall := e.Registry().IDOf('#')
	e.Place(0, 0, wall)

	v := NewView(s, e)
	defer v.Close()

	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	if id, _ := e.Get(0, 0); id == wall {
		t.Error("'u' did not undo")
	}
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if id, _ := e.Get(0, 0); id != wall {
		t.Error("'r' did not redo")
	}

	saved := 0
	v.SetSaveHandler(func() error { saved++; return nil })
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))
	if saved != 1 {
		t.Error("'s' did not save")
	}
	v.SetSaveHandler(func() error { return errors.New("disk full") })
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone))

	if !v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("'q' should quit")
	}
	if !v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("Escape should quit")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	s := newSimScreen(t, 4, 3)
	v := NewView(s, newTestEditor(3, 2))
	defer v.Close()

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	done := make(chan error, 1)
	go func() { done <- v.Run(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after 'q'")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newSimScreen(t, 4, 3)
	v := NewView(s, newTestEditor(3, 2))
	defer v.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
