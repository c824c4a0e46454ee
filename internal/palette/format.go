package palette

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

// Format identifies a palette file encoding.
type Format int

const (
	// FormatTOML is the default palette encoding.
	FormatTOML Format = iota

	// FormatYAML is the alternative encoding.
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from the path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// document is the on-disk layout.
type document struct {
	Tiles []entry `toml:"tiles" yaml:"tiles"`
}

type entry struct {
	ID             uint16         `toml:"id" yaml:"id"`
	Char           string         `toml:"char" yaml:"char"`
	Name           string         `toml:"name" yaml:"name"`
	Color          string         `toml:"color,omitempty" yaml:"color,omitempty"`
	BlocksMovement bool           `toml:"blocks_movement" yaml:"blocks_movement"`
	BlocksSight    bool           `toml:"blocks_sight" yaml:"blocks_sight"`
	Properties     map[string]any `toml:"properties,omitempty" yaml:"properties,omitempty"`
}

// Encode serialises definitions in the given format.
func Encode(f Format, defs []tile.Definition) ([]byte, error) {
	doc := document{Tiles: make([]entry, 0, len(defs))}
	for _, d := range defs {
		doc.Tiles = append(doc.Tiles, entry{
			ID:             uint16(d.ID),
			Char:           string(d.Char),
			Name:           d.Name,
			Color:          FormatColor(d.Color),
			BlocksMovement: d.BlocksMovement,
			BlocksSight:    d.BlocksSight,
			Properties:     d.Properties,
		})
	}

	switch f {
	case FormatTOML:
		return toml.Marshal(doc)
	case FormatYAML:
		return yaml.Marshal(doc)
	default:
		return nil, ErrUnknownFormat
	}
}

// Decode parses palette data. source names the data in errors.
func Decode(f Format, source string, data []byte) ([]tile.Definition, error) {
	var doc document
	switch f {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			pe := &ParseError{Path: source, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				pe.Line, pe.Column = derr.Position()
			}
			return nil, pe
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return nil, ErrUnknownFormat
	}

	defs := make([]tile.Definition, 0, len(doc.Tiles))
	for i, e := range doc.Tiles {
		def, err := e.definition()
		if err != nil {
			return nil, fmt.Errorf("%s: tile %d: %w", source, i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (e entry) definition() (tile.Definition, error) {
	if e.ID == 0 {
		return tile.Definition{}, fmt.Errorf("%w: id must be positive", ErrInvalidEntry)
	}
	if utf8.RuneCountInString(e.Char) != 1 {
		return tile.Definition{}, fmt.Errorf("%w: char %q must be a single character", ErrInvalidEntry, e.Char)
	}
	c, _ := utf8.DecodeRuneInString(e.Char)
	if unicode.IsSpace(c) {
		return tile.Definition{}, fmt.Errorf("%w: char %q is reserved for empty cells", ErrInvalidEntry, e.Char)
	}
	color, err := ParseColor(e.Color)
	if err != nil {
		return tile.Definition{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return tile.Definition{
		ID:             tile.ID(e.ID),
		Char:           c,
		Name:           e.Name,
		Color:          color,
		BlocksMovement: e.BlocksMovement,
		BlocksSight:    e.BlocksSight,
		Properties:     e.Properties,
	}, nil
}
