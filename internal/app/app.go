// Package app wires configuration, the tile palette and the editor engine
// together and runs batch edits against a character map.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/dshills/tilesmith/internal/config"
	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/engine/autotile"
	"github.com/dshills/tilesmith/internal/engine/tile"
	"github.com/dshills/tilesmith/internal/palette"
)

// Application is the central coordinator for all tilesmith components.
type Application struct {
	opts Options

	config   *config.Config
	logger   *slog.Logger
	registry *tile.Registry
	store    *palette.Store
	editor   *engine.Editor
	script   *autotile.Script

	shutdownOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// PalettePath overrides the configured palette file.
	PalettePath string

	// MapPath is the character map loaded at startup and written by save.
	MapPath string

	// Commands is a command file to execute; "-" reads Stdin.
	Commands string

	// LogLevel overrides the configured logging level.
	LogLevel string

	// Watch reloads the palette when its file changes while running.
	Watch bool

	// Dump prints the map after the commands have run.
	Dump bool

	// Stats prints per-tile cell counts after the commands have run.
	Stats bool

	// View shows the map on the terminal after the commands have run.
	View bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	app := &Application{opts: opts}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the resolved configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Editor returns the map editor.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Registry returns the tile registry.
func (app *Application) Registry() *tile.Registry {
	return app.registry
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// Run executes the configured commands and prints the requested reports.
// When watching is enabled the palette is reloaded on change until Run
// returns.
func (app *Application) Run(ctx context.Context) error {
	if (app.opts.Watch || app.config.Palette.Watch) && app.store != nil {
		wctx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.store.Watch(wctx, app.registry); err != nil {
				app.logger.Warn("palette watch stopped", "err", err)
			}
		}()
		defer func() {
			cancel()
			wg.Wait()
		}()
	}

	if app.opts.Commands != "" {
		if err := app.runCommandSource(ctx, app.opts.Commands); err != nil {
			return err
		}
	}
	if app.opts.Dump {
		if err := app.Dump(app.opts.Stdout); err != nil {
			return err
		}
	}
	if app.opts.Stats {
		if err := app.WriteStats(app.opts.Stdout); err != nil {
			return err
		}
	}
	if app.opts.View {
		return app.View(ctx)
	}
	return nil
}

func (app *Application) runCommandSource(ctx context.Context, src string) error {
	if src == "-" {
		return app.Exec(ctx, app.opts.Stdin)
	}
	f, err := os.Open(src)
	if err != nil {
		return NewOperationError("open commands", src, err)
	}
	defer f.Close()
	return app.Exec(ctx, f)
}

// Dump writes the map as characters, one row per line.
func (app *Application) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range app.editor.Chars() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteStats writes "char name count" lines sorted by character.
func (app *Application) WriteStats(w io.Writer) error {
	stats := app.editor.Stats()
	chars := make([]rune, 0, len(stats))
	for c := range stats {
		chars = append(chars, c)
	}
	slices.Sort(chars)

	bw := bufio.NewWriter(w)
	for _, c := range chars {
		name := "unknown"
		if c == engine.VoidChar {
			name = "void"
		} else if def, ok := app.registry.Get(app.registry.IDOf(c)); ok {
			name = def.Name
		}
		if _, err := fmt.Fprintf(bw, "%q\t%s\t%d\n", c, name, stats[c]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes the map to path, or to the startup map path when empty.
func (app *Application) Save(path string) error {
	if path == "" {
		path = app.opts.MapPath
	}
	if path == "" {
		return ErrNoMapPath
	}
	if err := writeMap(path, app.editor.Chars()); err != nil {
		return NewOperationError("save", path, err)
	}
	app.editor.MarkClean()
	app.logger.Info("map saved", "path", path, "width", app.editor.Width(), "height", app.editor.Height())
	return nil
}

// Shutdown releases resources. Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		if app.script != nil {
			app.script.Close()
		}
	})
}
