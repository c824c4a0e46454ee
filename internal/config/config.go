package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/tilesmith/internal/engine"
	"github.com/dshills/tilesmith/internal/palette"
)

// Limits on map dimensions.
const (
	MinMapSize = 1
	MaxMapSize = engine.MaxSize
)

// Config holds all tilesmith settings.
type Config struct {
	Map     MapConfig     `toml:"map"`
	Editor  EditorConfig  `toml:"editor"`
	Palette PaletteConfig `toml:"palette"`
	Logging LoggingConfig `toml:"logging"`
}

// MapConfig describes a new map.
type MapConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Fill   string `toml:"fill"`
}

// EditorConfig holds editing behaviour settings.
type EditorConfig struct {
	// UndoLimit bounds the undo history.
	UndoLimit int `toml:"undo_limit"`
	// Autotile is an optional Lua resolver script.
	Autotile string `toml:"autotile"`
}

// PaletteConfig locates the tile palette.
type PaletteConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Map: MapConfig{
			Width:  40,
			Height: 30,
			Fill:   ".",
		},
		Editor: EditorConfig{
			UndoLimit: 100,
		},
		Palette: PaletteConfig{
			Path: "tiles.toml",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds a configuration from the defaults, the TOML file at path
// and TILESMITH_* environment variables, then validates it.
// An empty path or a missing file contributes nothing.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the settings present in a TOML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		pe := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

// Validate checks every setting and returns the first failure.
func (c *Config) Validate() error {
	if c.Map.Width < MinMapSize || c.Map.Width > MaxMapSize {
		return &ValidationError{Path: "map.width", Message: fmt.Sprintf("must be between %d and %d", MinMapSize, MaxMapSize), Value: c.Map.Width}
	}
	if c.Map.Height < MinMapSize || c.Map.Height > MaxMapSize {
		return &ValidationError{Path: "map.height", Message: fmt.Sprintf("must be between %d and %d", MinMapSize, MaxMapSize), Value: c.Map.Height}
	}
	if utf8.RuneCountInString(c.Map.Fill) != 1 {
		return &ValidationError{Path: "map.fill", Message: "must be a single character", Value: c.Map.Fill}
	}
	if c.Editor.UndoLimit < 1 {
		return &ValidationError{Path: "editor.undo_limit", Message: "must be positive", Value: c.Editor.UndoLimit}
	}
	if c.Palette.Path != "" {
		if _, err := palette.FormatFor(c.Palette.Path); err != nil {
			return &ValidationError{Path: "palette.path", Message: "must end in .toml, .yaml or .yml", Value: c.Palette.Path}
		}
	}
	if _, ok := parseLevel(c.Logging.Level); !ok {
		return &ValidationError{Path: "logging.level", Message: "must be debug, info, warn or error", Value: c.Logging.Level}
	}
	return nil
}

// FillChar returns the map fill character.
func (c *Config) FillChar() rune {
	r, _ := utf8.DecodeRuneInString(c.Map.Fill)
	return r
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Logging.Level)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
