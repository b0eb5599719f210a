package render

import "github.com/planweave/planweave/pkg/layout"

// Surface is the drawing abstraction the build pipeline renders against.
// Implementations translate abstract grid-unit geometry into a physical
// document format.
//
// Pages are implicit state: [Surface.StartPage] opens a new page and all
// subsequent drawing applies to it. Page numbers are 1-based and advance
// monotonically; the orchestrator guarantees it calls StartPage before any
// drawing operation.
type Surface interface {
	// StartPage opens a new page.
	StartPage()
	// Background stamps a full-page background pattern, e.g. "dots" with a
	// spacing of two grid units.
	Background(pattern string, spacing int)
	// Text draws s inside box.
	Text(box layout.Box, s string, style TextStyle)
	// Box draws a rectangle outline and/or fill covering box.
	Box(box layout.Box, style BoxStyle)
	// Line draws a straight segment between two grid points.
	Line(x1, y1, x2, y2 int, style LineStyle)
	// NamedDest registers key as a named destination anchored to the
	// current page.
	NamedDest(key string)
	// Link annotates box as a clickable link to the named destination key.
	Link(box layout.Box, key string)
	// OutlineSection opens a bookmark section targeting page (0 for a
	// non-clickable header), evaluates fn for its children, then closes it.
	OutlineSection(title string, page int, fn func())
	// OutlinePage appends a leaf bookmark targeting page.
	OutlinePage(page int, title string)
}

// Align positions text horizontally inside its box.
type Align string

// Text alignment values for [TextStyle.Align].
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextStyle controls how [Surface.Text] draws a string. The zero value is
// body-sized, left-aligned text.
type TextStyle struct {
	Size  int   // Abstract text size; 0 means the surface default
	Align Align // Horizontal alignment; empty means AlignLeft
	Bold  bool
	Muted bool // De-emphasized, e.g. adjacent-month days in a calendar
}

// BoxStyle controls how [Surface.Box] draws a rectangle.
type BoxStyle struct {
	Stroke  bool
	Fill    bool
	Rounded bool
}

// LineStyle controls how [Surface.Line] draws a segment.
type LineStyle struct {
	Dashed bool
}
