package app

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/renderer"
)

// View shows the map on the terminal until the user quits.
func (app *Application) View(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return NewOperationError("open terminal", "", err)
	}
	if err := screen.Init(); err != nil {
		return NewOperationError("open terminal", "", err)
	}
	defer screen.Fini()

	return app.viewOn(ctx, screen)
}

func (app *Application) viewOn(ctx context.Context, screen tcell.Screen) error {
	v := renderer.NewView(screen, app.editor)
	defer v.Close()
	if app.opts.MapPath != "" {
		v.SetSaveHandler(func() error { return app.Save("") })
	}
	return v.Run(ctx)
}
