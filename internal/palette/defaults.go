package palette

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Default tile characters.
const (
	CharFloor    = '.'
	CharWall     = '#'
	CharWater    = '~'
	CharDoor     = '+'
	CharGrass    = '"'
	CharMountain = '^'
)

// Defaults returns the stock tile set with identifiers 1 to 6.
func Defaults() []tile.Definition {
	return []tile.Definition{
		{ID: 1, Char: CharFloor, Name: "Floor", Color: tcell.ColorGray},
		{ID: 2, Char: CharWall, Name: "Wall", Color: tcell.ColorWhite, BlocksMovement: true, BlocksSight: true},
		{ID: 3, Char: CharWater, Name: "Water", Color: tcell.ColorBlue, BlocksMovement: true},
		{ID: 4, Char: CharDoor, Name: "Door", Color: tcell.ColorSaddleBrown, BlocksSight: true},
		{ID: 5, Char: CharGrass, Name: "Grass", Color: tcell.ColorGreen},
		{ID: 6, Char: CharMountain, Name: "Mountain", Color: tcell.ColorSlateGray, BlocksMovement: true, BlocksSight: true},
	}
}

// Seed loads Defaults into reg when it is empty and reports whether it did.
func Seed(reg *tile.Registry) bool {
	if reg.Len() > 0 {
		return false
	}
	reg.Restore(Defaults())
	return true
}
