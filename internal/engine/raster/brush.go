package raster

import "slices"

// BrushKind distinguishes the two brush shapes.
type BrushKind int

const (
	// BrushSquare is a uniform square brush.
	BrushSquare BrushKind = iota

	// BrushMask is an explicit boolean mask.
	BrushMask
)

// String returns the brush kind name.
func (k BrushKind) String() string {
	switch k {
	case BrushSquare:
		return "square"
	case BrushMask:
		return "mask"
	default:
		return "unknown"
	}
}

// Brush is the shape stamped around each drawn point.
// The zero Brush is a single-cell square.
type Brush struct {
	kind   BrushKind
	size   int
	mask   [][]bool
	width  int
	height int
}

// MaxBrushSize is the largest square brush.
const MaxBrushSize = 8193

// SquareBrush returns a uniform brush. Sizes are clamped to 1..MaxBrushSize.
func SquareBrush(size int) Brush {
	return Brush{kind: BrushSquare, size: min(max(size, 1), MaxBrushSize)}
}

// MaskBrush returns a brush from a [row][col] mask. The mask is copied.
// An empty mask stamps nothing.
func MaskBrush(mask [][]bool) Brush {
	b := Brush{kind: BrushMask, mask: make([][]bool, len(mask)), height: len(mask)}
	for i, row := range mask {
		b.mask[i] = slices.Clone(row)
		b.width = max(b.width, len(row))
	}
	return b
}

// Kind returns the brush shape.
func (b Brush) Kind() BrushKind {
	return b.kind
}

// Size returns the square brush size. It is 1 for mask brushes.
func (b Brush) Size() int {
	if b.kind != BrushSquare {
		return 1
	}
	return max(b.size, 1)
}

// Dimensions returns the width and height of the cells the brush covers.
func (b Brush) Dimensions() (width, height int) {
	switch b.kind {
	case BrushMask:
		return b.width, b.height
	default:
		s := b.Size()
		if s <= 1 {
			return 1, 1
		}
		return 2*(s/2) + 1, 2*(s/2) + 1
	}
}

// reach returns how far the brush extends from its target cell.
func (b Brush) reach() int {
	if b.kind == BrushMask {
		return max(b.width, b.height)
	}
	return b.Size() / 2
}

// Offsets returns the cells stamped relative to the target cell.
func (b Brush) Offsets() []Offset {
	switch b.kind {
	case BrushMask:
		ox, oy := b.width/2, b.height/2
		var result []Offset
		for my, row := range b.mask {
			for mx, on := range row {
				if on {
					result = append(result, Offset{DX: mx - ox, DY: my - oy})
				}
			}
		}
		return result
	default:
		half := b.Size() / 2
		result := make([]Offset, 0, (2*half+1)*(2*half+1))
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				result = append(result, Offset{DX: dx, DY: dy})
			}
		}
		return result
	}
}

// Offset is a cell displacement from a brush's target cell.
type Offset struct {
	DX, DY int
}
