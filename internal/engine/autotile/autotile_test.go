package autotile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/tilesmith/internal/engine/grid"
	"github.com/dshills/tilesmith/internal/engine/raster"
	"github.com/dshills/tilesmith/internal/engine/tile"
)

func TestNeighbourMask(t *testing.T) {
	g := grid.FromRows([][]tile.ID{
		{0, 1, 0},
		{1, 0, 0},
		{0, 1, 0},
	})
	is1 := func(id tile.ID) bool { return id == 1 }

	if got := NeighbourMask(g, 1, 1, is1); got != North|South|West {
		t.Errorf("mask = %d, want %d", got, North|South|West)
	}
	if got := NeighbourMask(g, 0, 0, is1); got != East|South {
		t.Errorf("corner mask = %d, want %d", got, East|South)
	}
}

func TestRulesResolve(t *testing.T) {
	const wall, post, hWall, vWall tile.ID = 2, 10, 11, 12
	g := grid.New(5, 5, 1)
	rules := NewRules(g)

	var v Variants
	v[0] = post
	v[East|West] = hWall
	v[North|South] = vWall
	rules.Add(wall, v)

	if got := rules.Resolve(2, 2, wall); got != post {
		t.Errorf("isolated wall = %d, want post %d", got, post)
	}

	g.Set(1, 2, wall)
	g.Set(3, 2, hWall)
	if got := rules.Resolve(2, 2, wall); got != hWall {
		t.Errorf("horizontal wall = %d, want %d", got, hWall)
	}

	// masks without a variant fall back to the base tile
	g.Set(2, 1, wall)
	if got := rules.Resolve(2, 2, wall); got != wall {
		t.Errorf("unmapped mask = %d, want base %d", got, wall)
	}

	if got := rules.Resolve(2, 2, 7); got != 7 {
		t.Errorf("tile without rules = %d, want 7", got)
	}
}

func TestRulesWithRaster(t *testing.T) {
	const wall, hWall tile.ID = 2, 11
	g := grid.New(5, 1, 1)
	rules := NewRules(g)
	var v Variants
	v[West] = hWall
	v[East|West] = hWall
	rules.Add(wall, v)

	raster.Line(g, 0, 0, 4, 0, wall, raster.Brush{}, rules)

	want := []tile.ID{wall, hWall, hWall, hWall, hWall}
	for x, id := range want {
		if got, _ := g.Get(x, 0); got != id {
			t.Errorf("(%d,0) = %d, want %d", x, got, id)
		}
	}
}

func TestRulesRemove(t *testing.T) {
	rules := NewRules(grid.New(1, 1, 0))
	rules.Add(2, Variants{0: 9})
	if rules.Len() != 1 {
		t.Fatal("rule not added")
	}
	rules.Remove(2)
	rules.Remove(2)
	if rules.Len() != 0 {
		t.Error("rule not removed")
	}
	if got := rules.Resolve(0, 0, 2); got != 2 {
		t.Errorf("resolve after remove = %d, want 2", got)
	}
}

func TestScriptResolve(t *testing.T) {
	reg := tile.NewRegistry()
	floor := reg.Register('.', "Floor", tile.Attrs{})
	water := reg.Register('~', "Water", tile.Attrs{})
	shore := reg.Register('-', "Shore", tile.Attrs{})

	g := grid.New(3, 3, floor)
	script, err := NewScript(`
function resolve(x, y, base, mask)
    if base == id("~") and mask ~= 15 then
        return id("-")
    end
    return base
end
`, g, reg)
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	defer script.Close()

	if got := script.Resolve(1, 1, water); got != shore {
		t.Errorf("lone water = %d, want shore %d", got, shore)
	}
	g.Fill(g.Bounds(), water)
	if got := script.Resolve(1, 1, water); got != water {
		t.Errorf("surrounded water = %d, want water %d", got, water)
	}
	if got := script.Resolve(1, 1, floor); got != floor {
		t.Errorf("floor = %d, want %d", got, floor)
	}
}

func TestScriptHostFunctions(t *testing.T) {
	reg := tile.NewRegistry()
	wall := reg.Register('#', "Wall", tile.Attrs{})
	g := grid.New(2, 1, wall)

	script, err := NewScript(`
function resolve(x, y, base, mask)
    if get(x + 1, y) == nil and char(base) == "#" then
        return 0
    end
    return base
end
`, g, reg)
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	defer script.Close()

	if got := script.Resolve(1, 0, wall); got != tile.Void {
		t.Errorf("edge = %d, want Void", got)
	}
	if got := script.Resolve(0, 0, wall); got != wall {
		t.Errorf("inner = %d, want %d", got, wall)
	}
}

func TestScriptFallbacks(t *testing.T) {
	g := grid.New(1, 1, 0)
	tests := []struct {
		name string
		src  string
	}{
		{"runtime error", `function resolve() error("boom") end`},
		{"string result", `function resolve() return "x" end`},
		{"nil result", `function resolve() end`},
		{"negative", `function resolve() return -1 end`},
		{"fraction", `function resolve() return 1.5 end`},
		{"too large", `function resolve() return 70000 end`},
		{"endless", `function resolve() while true do end end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScript(tt.src, g, nil)
			if err != nil {
				t.Fatalf("NewScript: %v", err)
			}
			defer s.Close()
			if got := s.Resolve(0, 0, 4); got != 4 {
				t.Errorf("Resolve = %d, want base 4", got)
			}
		})
	}
}

func TestScriptLoadErrors(t *testing.T) {
	g := grid.New(1, 1, 0)
	if _, err := NewScript(`function resolve(`, g, nil); err == nil {
		t.Error("syntax error not reported")
	}
	if _, err := NewScript(`x = 1`, g, nil); !errors.Is(err, ErrNoResolve) {
		t.Errorf("err = %v, want ErrNoResolve", err)
	}
	if _, err := NewScript(`dofile("/etc/passwd")`, g, nil); err == nil {
		t.Error("dofile should not be available")
	}
	if _, err := LoadScript(filepath.Join(t.TempDir(), "missing.lua"), g, nil); err == nil {
		t.Error("missing file not reported")
	}
}

func TestLoadScriptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.lua")
	if err := os.WriteFile(path, []byte(`function resolve(x, y, base) return base + 1 end`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path, grid.New(1, 1, 0), nil)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if got := s.Resolve(0, 0, 3); got != 4 {
		t.Errorf("Resolve = %d, want 4", got)
	}
	s.Close()
	s.Close()
	if got := s.Resolve(0, 0, 3); got != 3 {
		t.Errorf("Resolve after Close = %d, want base 3", got)
	}
}
