package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.FillChar() != '.' {
		t.Errorf("FillChar = %q, want '.'", cfg.FillChar())
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilesmith.toml")
	content := `
[map]
width = 64
fill = "#"

[editor]
autotile = "walls.lua"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Width != 64 {
		t.Errorf("map.width = %d, want 64", cfg.Map.Width)
	}
	if cfg.Map.Height != 30 {
		t.Errorf("map.height = %d, want default 30", cfg.Map.Height)
	}
	if cfg.FillChar() != '#' {
		t.Errorf("FillChar = %q, want '#'", cfg.FillChar())
	}
	if cfg.Editor.Autotile != "walls.lua" {
		t.Errorf("editor.autotile = %q", cfg.Editor.Autotile)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Width != Default().Map.Width {
		t.Error("missing file should yield defaults")
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[map\nwidth = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if pe.Path != path || pe.Line < 1 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.toml")
	if err := os.WriteFile(path, []byte("[map]\nheight = 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Path != "map.height" {
		t.Errorf("ValidationError = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
	}{
		{"width too small", func(c *Config) { c.Map.Width = 0 }, "map.width"},
		{"width too large", func(c *Config) { c.Map.Width = MaxMapSize + 1 }, "map.width"},
		{"empty fill", func(c *Config) { c.Map.Fill = "" }, "map.fill"},
		{"long fill", func(c *Config) { c.Map.Fill = ".." }, "map.fill"},
		{"undo limit", func(c *Config) { c.Editor.UndoLimit = 0 }, "editor.undo_limit"},
		{"palette format", func(c *Config) { c.Palette.Path = "tiles.json" }, "palette.path"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("Path = %q, want %q", ve.Path, tt.path)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ValidationError should wrap ErrInvalidConfig")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"TILESMITH_MAP_WIDTH":      "12",
		"TILESMITH_MAP_FILL":       "~",
		"TILESMITH_PALETTE_PATH":   "/tmp/p.yaml",
		"TILESMITH_PALETTE_WATCH":  "yes",
		"TILESMITH_LOG_LEVEL":      "warn",
		"TILESMITH_UNRELATED_NAME": "ignored",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Map.Width != 12 || cfg.FillChar() != '~' {
		t.Errorf("map = %+v", cfg.Map)
	}
	if cfg.Palette.Path != "/tmp/p.yaml" || !cfg.Palette.Watch {
		t.Errorf("palette = %+v", cfg.Palette)
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel())
	}

	if err := Default().ApplyEnv(noEnv); err != nil {
		t.Errorf("empty env error = %v", err)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"TILESMITH_MAP_HEIGHT":    "tall",
		"TILESMITH_PALETTE_WATCH": "maybe",
	}
	for env, val := range tests {
		t.Run(env, func(t *testing.T) {
			err := Default().ApplyEnv(envMap(map[string]string{env: val}))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilesmith.toml")
	if err := os.WriteFile(path, []byte("[map]\nwidth = 64\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TILESMITH_MAP_WIDTH", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Map.Width != 8 {
		t.Errorf("map.width = %d, want 8 from environment", cfg.Map.Width)
	}
}
