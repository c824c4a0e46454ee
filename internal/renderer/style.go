package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Styles used outside tile cells.
var (
	StyleStatus  = tcell.StyleDefault.Reverse(true)
	StyleUnknown = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// tileCell returns the rune and style shown for id.
// Tiles that block movement are drawn bold.
func tileCell(reg *tile.Registry, id tile.ID) (rune, tcell.Style) {
	if id == tile.Void {
		return engine.VoidChar, tcell.StyleDefault
	}
	def, ok := reg.Get(id)
	if !ok {
		return engine.UnknownChar, StyleUnknown
	}
	style := tcell.StyleDefault.Foreground(def.Color)
	if def.BlocksMovement {
		style = style.Bold(true)
	}
	return def.Char, style
}
