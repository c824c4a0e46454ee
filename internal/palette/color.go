package palette

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor converts a palette color to a tcell color.
// It accepts "#rrggbb", "#rgb", a tcell color name, or "" for the
// terminal default.
func ParseColor(s string) (tcell.Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "default"):
		return tcell.ColorDefault, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	default:
		c := tcell.GetColor(strings.ToLower(s))
		if c == tcell.ColorDefault {
			return tcell.ColorDefault, fmt.Errorf("unknown color name %q", s)
		}
		return c, nil
	}
}

// FormatColor renders c as "#rrggbb", or "" for the terminal default.
func FormatColor(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return ""
	}
	r, g, b := c.RGB()
	if r < 0 {
		return ""
	}
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hex()
}
