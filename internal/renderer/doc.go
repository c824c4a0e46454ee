// Package renderer draws a tile map on a terminal using tcell.
//
// A View shows the part of the map that fits the screen, one cell per
// tile, coloured from the tile registry, with a status line underneath:
//
//	screen, _ := tcell.NewScreen()
//	screen.Init()
//	defer screen.Fini()
//
//	v := renderer.NewView(screen, editor)
//	defer v.Close()
//	v.Run(ctx)
//
// Grid edits and registry reloads, including those made from other
// goroutines such as a palette watcher, trigger a redraw.
package renderer
