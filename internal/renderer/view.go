package renderer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// View renders an editor's map onto a tcell screen.
type View struct {
	screen tcell.Screen
	editor *engine.Editor

	// Scroll offset of the top-left visible map cell.
	offX, offY int

	message string
	onSave  func() error

	dirty    atomic.Bool
	gridSub  *grid.Subscription
	tileSub  *tile.Subscription
	closeMu  sync.Mutex
	isClosed bool
}

// NewView creates a view of e on screen. The screen must be initialised.
func NewView(screen tcell.Screen, e *engine.Editor) *View {
	v := &View{screen: screen, editor: e}
	v.dirty.Store(true)
	v.gridSub = e.Subscribe(grid.ListenerFuncs{
		Cell:   func(int, int, tile.ID) { v.dirty.Store(true) },
		Region: func(grid.Rect) { v.dirty.Store(true) },
		Grid:   func() { v.dirty.Store(true) },
	})
	v.tileSub = e.Registry().Subscribe(func(tile.Change) {
		v.dirty.Store(true)
		// Registry changes may come from another goroutine; wake the loop.
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	return v
}

// SetSaveHandler sets the action bound to the 's' key.
func (v *View) SetSaveHandler(fn func() error) {
	v.onSave = fn
}

// Offset returns the scroll offset.
func (v *View) Offset() (x, y int) {
	return v.offX, v.offY
}

// Dirty reports whether the view needs redrawing.
func (v *View) Dirty() bool {
	return v.dirty.Load()
}

// mapArea returns the screen area available for map cells.
func (v *View) mapArea() (width, height int) {
	w, h := v.screen.Size()
	return w, max(h-1, 0)
}

// Scroll moves the viewport, keeping it within the map.
func (v *View) Scroll(dx, dy int) {
	w, h := v.mapArea()
	v.offX = clamp(v.offX+dx, 0, max(v.editor.Width()-w, 0))
	v.offY = clamp(v.offY+dy, 0, max(v.editor.Height()-h, 0))
	v.dirty.Store(true)
}

// Draw renders the visible map and the status line, then shows the screen.
func (v *View) Draw() {
	v.dirty.Store(false)
	reg := v.editor.Registry()
	w, h := v.mapArea()

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			id, ok := v.editor.Get(sx+v.offX, sy+v.offY)
			if !ok {
				v.screen.SetContent(sx, sy, ' ', nil, tcell.StyleDefault)
				continue
			}
			r, style := tileCell(reg, id)
			v.screen.SetContent(sx, sy, r, nil, style)
		}
	}
	v.drawStatus(w, h)
	v.screen.Show()
}

func (v *View) drawStatus(width, row int) {
	status := fmt.Sprintf(" %dx%d  @%d,%d  undo %d  redo %d",
		v.editor.Width(), v.editor.Height(), v.offX, v.offY,
		v.editor.UndoCount(), v.editor.RedoCount())
	if v.editor.Dirty() {
		status += "  [modified]"
	}
	if v.message != "" {
		status += "  " + v.message
	}
	runes := []rune(status)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, row, r, nil, StyleStatus)
	}
}

// HandleKey applies a key press and reports whether the view should close.
func (v *View) HandleKey(ev *tcell.EventKey) (quit bool) {
	v.message = ""
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.Scroll(-1, 0)
	case tcell.KeyRight:
		v.Scroll(1, 0)
	case tcell.KeyUp:
		v.Scroll(0, -1)
	case tcell.KeyDown:
		v.Scroll(0, 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'u':
			if !v.editor.Undo() {
				v.message = "nothing to undo"
			}
		case 'r':
			if !v.editor.Redo() {
				v.message = "nothing to redo"
			}
		case 's':
			v.save()
		}
	}
	v.dirty.Store(true)
	return false
}

func (v *View) save() {
	if v.onSave == nil {
		v.message = "no save target"
		return
	}
	if err := v.onSave(); err != nil {
		v.message = "save failed: " + err.Error()
		return
	}
	v.message = "saved"
}

// Run draws the view and handles input until the user quits or ctx is
// cancelled.
func (v *View) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	v.Draw()
	for {
		ev := v.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			v.Scroll(0, 0)
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		}
		if v.dirty.Load() {
			v.Draw()
		}
	}
}

// Close detaches the view from the editor. Safe to call more than once.
func (v *View) Close() {
	v.closeMu.Lock()
	defer v.closeMu.Unlock()
	if v.isClosed {
		return
	}
	v.isClosed = true
	v.gridSub.Unsubscribe()
	v.tileSub.Unsubscribe()
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
