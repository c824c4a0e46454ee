package palette

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tilesmith/internal/engine/tile"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"tiles.toml", FormatTOML, false},
		{"dir/tiles.TOML", FormatTOML, false},
		{"tiles.yaml", FormatYAML, false},
		{"tiles.yml", FormatYAML, false},
		{"tiles.json", 0, true},
		{"tiles", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("err = %v, want ErrUnknownFormat", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("FormatFor = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"", tcell.ColorDefault, false},
		{"default", tcell.ColorDefault, false},
		{"#ff0000", tcell.NewRGBColor(255, 0, 0), false},
		{"#0f0", tcell.NewRGBColor(0, 255, 0), false},
		{"red", tcell.ColorRed, false},
		{"Blue", tcell.ColorBlue, false},
		{"#zzzzzz", tcell.ColorDefault, true},
		{"not-a-color", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(tcell.NewRGBColor(18, 52, 86)); got != "#123456" {
		t.Errorf("FormatColor = %q, want #123456", got)
	}
	if got := FormatColor(tcell.ColorDefault); got != "" {
		t.Errorf("default = %q, want empty", got)
	}
}

func sampleDefs() []tile.Definition {
	return []tile.Definition{
		{ID: 1, Char: '.', Name: "Floor", Color: tcell.NewRGBColor(128, 128, 128)},
		{ID: 4, Char: '#', Name: "Wall", BlocksMovement: true, BlocksSight: true,
			Properties: map[string]any{"material": "stone"}},
		{ID: 9, Char: 'λ', Name: "Rune", Color: tcell.NewRGBColor(255, 0, 255)},
	}
}

func assertDefs(t *testing.T, got, want []tile.Definition) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d definitions, want %d", len(got), len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Char != w.Char || g.Name != w.Name || g.Color != w.Color ||
			g.BlocksMovement != w.BlocksMovement || g.BlocksSight != w.BlocksSight {
			t.Errorf("definition %d = %+v, want %+v", i, g, w)
		}
		for k, v := range w.Properties {
			if g.Properties[k] != v {
				t.Errorf("definition %d property %s = %v, want %v", i, k, g.Properties[k], v)
			}
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(f, sampleDefs())
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := Decode(f, "test", data)
			if err != nil {
				t.Fatalf("Decode: %v\n%s", err, data)
			}
			assertDefs(t, got, sampleDefs())
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   error
	}{
		{"zero id", FormatTOML, "[[tiles]]\nid = 0\nchar = \".\"\n", ErrInvalidEntry},
		{"long char", FormatTOML, "[[tiles]]\nid = 1\nchar = \"ab\"\n", ErrInvalidEntry},
		{"space char", FormatTOML, "[[tiles]]\nid = 1\nchar = \" \"\n", ErrInvalidEntry},
		{"tab char", FormatYAML, "tiles:\n  - id: 1\n    char: \"\\t\"\n", ErrInvalidEntry},
		{"bad color", FormatYAML, "tiles:\n  - id: 1\n    char: \"#\"\n    color: \"#nope\"\n", ErrInvalidEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.format, "test", []byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := Decode(FormatTOML, "broken.toml", []byte("[[tiles]\nid = 1\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if pe.Path != "broken.toml" || pe.Line == 0 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestStoreMissingFile(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defs, err := s.Load()
	if err != nil || defs != nil {
		t.Errorf("Load = %v, %v; want empty", defs, err)
	}

	reg := tile.NewRegistry()
	reg.Register('.', "Floor", tile.Attrs{})
	if n, err := s.Apply(reg); n != 0 || err != nil {
		t.Errorf("Apply = %d, %v", n, err)
	}
	if reg.Len() != 1 {
		t.Error("missing file cleared the registry")
	}
}

func TestNewStoreRejectsUnknownFormat(t *testing.T) {
	if _, err := NewStore("tiles.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestStoreAsPersister(t *testing.T) {
	for _, name := range []string{"tiles.toml", "tiles.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sub", name)
			s, err := NewStore(path)
			if err != nil {
				t.Fatalf("NewStore: %v", err)
			}

			reg := tile.NewRegistry(tile.WithPersister(s))
			reg.Register('.', "Floor", tile.Attrs{})
			wall := reg.Register('#', "Wall", tile.Attrs{Color: tcell.NewRGBColor(200, 200, 200), BlocksMovement: true})

			if _, err := os.Stat(path); err != nil {
				t.Fatalf("palette not written: %v", err)
			}

			other := tile.NewRegistry()
			n, err := s.Apply(other)
			if err != nil || n != 2 {
				t.Fatalf("Apply = %d, %v", n, err)
			}
			assertDefs(t, other.All(), reg.All())
			if other.IDOf('#') != wall {
				t.Error("identifiers not preserved")
			}
		})
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.toml")
	s, err := NewStore(path, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	reg := tile.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, reg) }()

	content := []byte("[[tiles]]\nid = 7\nchar = \"~\"\nname = \"Water\"\n")
	deadline := time.Now().Add(5 * time.Second)
	for reg.IDOf('~') != 7 {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("registry was not reloaded")
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not return after cancel")
	}
}

func TestSeed(t *testing.T) {
	reg := tile.NewRegistry()
	if !Seed(reg) {
		t.Fatal("Seed on empty registry returned false")
	}
	if reg.Len() != len(Defaults()) {
		t.Errorf("Len = %d, want %d", reg.Len(), len(Defaults()))
	}
	if reg.IDOf(CharWall) != 2 || reg.IDOf(CharFloor) != 1 {
		t.Error("default identifiers changed")
	}
	if Seed(reg) {
		t.Error("Seed on populated registry returned true")
	}
	if id := reg.Register('x', "Extra", tile.Attrs{}); id != 7 {
		t.Errorf("next id after defaults = %d, want 7", id)
	}
}
