package app

import (
	"github.com/dshills/tilesmith/internal/config"
	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/engine/autotile"
	"github.com/dshills/tilesmith/internal/engine/tile"
	"github.com/dshills/tilesmith/internal/palette"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app  *Application
	opts Options
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{app: app, opts: opts}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initPalette,
		b.initEditor,
		b.initAutotile,
		b.initMap,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.app.Shutdown()
			return err
		}
	}
	return nil
}

// initConfig loads configuration and applies command line overrides.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return NewOperationError("load config", b.opts.ConfigPath, err)
	}
	if b.opts.PalettePath != "" {
		cfg.Palette.Path = b.opts.PalettePath
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return NewOperationError("load config", b.opts.ConfigPath, err)
	}
	b.app.config = cfg
	b.app.logger = NewLogger(b.opts.Stderr, cfg.LogLevel())
	return nil
}

// initPalette builds the registry from the palette file, seeding and
// saving the default tiles when the file is missing or empty.
func (b *bootstrapper) initPalette() error {
	logger := b.app.logger
	reg := tile.NewRegistry(tile.WithLogger(logger))
	b.app.registry = reg

	path := b.app.config.Palette.Path
	if path == "" {
		palette.Seed(reg)
		return nil
	}

	store, err := palette.NewStore(path, palette.WithLogger(logger))
	if err != nil {
		return NewOperationError("open palette", path, err)
	}
	n, err := store.Apply(reg)
	if err != nil {
		return NewOperationError("load palette", path, err)
	}
	if n == 0 {
		palette.Seed(reg)
		if err := store.Save(reg.All()); err != nil {
			return NewOperationError("save palette", path, err)
		}
		logger.Info("palette created with default tiles", "path", store.Path())
	} else {
		logger.Debug("palette loaded", "path", store.Path(), "tiles", n)
	}
	reg.SetPersister(store)
	b.app.store = store
	return nil
}

// initEditor creates the map editor.
func (b *bootstrapper) initEditor() error {
	cfg := b.app.config
	b.app.editor = engine.New(
		engine.WithRegistry(b.app.registry),
		engine.WithSize(cfg.Map.Width, cfg.Map.Height),
		engine.WithFillChar(cfg.FillChar()),
		engine.WithMaxUndoEntries(cfg.Editor.UndoLimit),
		engine.WithLogger(b.app.logger),
	)
	return nil
}

// initAutotile loads the Lua resolver if one is configured.
func (b *bootstrapper) initAutotile() error {
	path := b.app.config.Editor.Autotile
	if path == "" {
		return nil
	}
	script, err := autotile.LoadScript(path, b.app.editor.Grid(), b.app.registry,
		autotile.WithScriptLogger(b.app.logger))
	if err != nil {
		return NewOperationError("load autotile", path, err)
	}
	b.app.script = script
	b.app.editor.SetResolver(script)
	return nil
}

// initMap loads the startup map if it exists.
func (b *bootstrapper) initMap() error {
	path := b.opts.MapPath
	if path == "" {
		return nil
	}
	lines, ok, err := readMap(path)
	if err != nil {
		return NewOperationError("load map", path, err)
	}
	if !ok {
		b.app.logger.Debug("map file not found, starting blank", "path", path)
		return nil
	}
	b.app.editor.LoadChars(lines)
	b.app.logger.Debug("map loaded", "path", path,
		"width", b.app.editor.Width(), "height", b.app.editor.Height())
	return nil
}
