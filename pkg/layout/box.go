package layout

import "fmt"

// Box is a resolved rectangular region on the grid.
// Col/Row locate the top-left corner; Width/Height are extents in grid units.
type Box struct {
	Col    int
	Row    int
	Width  int
	Height int
}

// Right returns the first column past the box.
func (b Box) Right() int { return b.Col + b.Width }

// Bottom returns the first row past the box.
func (b Box) Bottom() int { return b.Row + b.Height }

// Inset returns a copy of the box shrunk by n units on every side.
// Width and height never go below zero.
func (b Box) Inset(n int) Box {
	w := b.Width - 2*n
	h := b.Height - 2*n
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Box{Col: b.Col + n, Row: b.Row + n, Width: w, Height: h}
}

// String implements fmt.Stringer for debugging and test output.
func (b Box) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.Col, b.Row, b.Width, b.Height)
}
