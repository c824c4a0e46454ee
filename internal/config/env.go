package config

import (
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TILESMITH_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetter applies one environment value.
type envSetter func(c *Config, value string) error

// envMapping maps environment variables to settings.
var envMapping = map[string]envSetter{
	"TILESMITH_MAP_WIDTH":         intSetter("map.width", func(c *Config) *int { return &c.Map.Width }),
	"TILESMITH_MAP_HEIGHT":        intSetter("map.height", func(c *Config) *int { return &c.Map.Height }),
	"TILESMITH_MAP_FILL":          stringSetter(func(c *Config) *string { return &c.Map.Fill }),
	"TILESMITH_EDITOR_UNDO_LIMIT": intSetter("editor.undo_limit", func(c *Config) *int { return &c.Editor.UndoLimit }),
	"TILESMITH_EDITOR_AUTOTILE":   stringSetter(func(c *Config) *string { return &c.Editor.Autotile }),
	"TILESMITH_PALETTE_PATH":      stringSetter(func(c *Config) *string { return &c.Palette.Path }),
	"TILESMITH_PALETTE_WATCH":     boolSetter("palette.watch", func(c *Config) *bool { return &c.Palette.Watch }),
	"TILESMITH_LOG_LEVEL":         stringSetter(func(c *Config) *string { return &c.Logging.Level }),
}

// ApplyEnv overrides settings from environment variables.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for env, set := range envMapping {
		val, ok := lookup(env)
		if !ok {
			continue
		}
		if err := set(c, val); err != nil {
			return err
		}
	}
	return nil
}

func intSetter(path string, field func(*Config) *int) envSetter {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &ValidationError{Path: path, Message: "must be an integer", Value: value}
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(path string, field func(*Config) *bool) envSetter {
	return func(c *Config, value string) error {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0", "":
			*field(c) = false
		default:
			return &ValidationError{Path: path, Message: "must be a boolean", Value: value}
		}
		return nil
	}
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}
