package grid

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Rect is an inclusive cell rectangle from (X0, Y0) to (X1, Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// NewRect builds a rectangle from two opposite corners in any order.
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{
		X0: min(x0, x1),
		Y0: min(y0, y1),
		X1: max(x0, x1),
		Y1: max(y0, y1),
	}
}

// RectAt builds a rectangle from its top-left corner and size.
func RectAt(x, y, w, h int) Rect {
	return Rect{X0: x, Y0: y, X1: x + w - 1, Y1: y + h - 1}
}

// Width returns the number of columns covered.
func (r Rect) Width() int {
	return r.X1 - r.X0 + 1
}

// Height returns the number of rows covered.
func (r Rect) Height() int {
	return r.Y1 - r.Y0 + 1
}

// Empty returns true if the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.X1 < r.X0 || r.Y1 < r.Y0
}

// Contains returns true if (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Intersect returns the overlap of two rectangles. The result may be Empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		X0: max(r.X0, o.X0),
		Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1),
		Y1: min(r.Y1, o.Y1),
	}
}

// Clip limits the rectangle to a width × height grid.
// ok is false if nothing remains.
func (r Rect) Clip(width, height int) (Rect, bool) {
	c := r.Intersect(Rect{X0: 0, Y0: 0, X1: width - 1, Y1: height - 1})
	return c, !c.Empty()
}
