package render

import "github.com/planweave/planweave/pkg/layout"

// Op kinds recorded by [Recorder].
const (
	OpBackground = "background"
	OpText       = "text"
	OpBox        = "box"
	OpLine       = "line"
	OpDest       = "dest"
	OpLink       = "link"
)

// Op is one recorded drawing operation. Kind determines which of the
// remaining fields are meaningful; unused fields stay zero.
type Op struct {
	Kind string

	Box            layout.Box // Target region for text, box and link ops
	X1, Y1, X2, Y2 int        // Line endpoints

	Text    string // Text content
	Key     string // Destination key for dest and link ops
	Pattern string // Background pattern name
	Spacing int    // Background pattern spacing

	TextStyle TextStyle
	BoxStyle  BoxStyle
	LineStyle LineStyle
}

// Page holds the operations recorded for one document page.
type Page struct {
	Number int // 1-based
	Ops    []Op
}

// OutlineEntry is one node of the recorded bookmark tree. Page 0 marks a
// non-clickable header.
type OutlineEntry struct {
	Title    string
	Page     int
	Children []OutlineEntry
}

// Recorder is a [Surface] that captures operations instead of drawing
// them. It is the reference surface: the JSON artifact, inspection tooling
// and the build tests all consume the recorded log.
//
// A drawing call before the first [Recorder.StartPage] opens page 1.
type Recorder struct {
	pages   []Page
	outline []OutlineEntry
	// sections holds the open outline-section path; appends go to the last
	// element, or to the root list when empty.
	sections []*OutlineEntry
}

var _ Surface = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StartPage opens the next page.
func (r *Recorder) StartPage() {
	r.pages = append(r.pages, Page{Number: len(r.pages) + 1})
}

func (r *Recorder) record(op Op) {
	if len(r.pages) == 0 {
		r.StartPage()
	}
	p := &r.pages[len(r.pages)-1]
	p.Ops = append(p.Ops, op)
}

// Background records a background stamp on the current page.
func (r *Recorder) Background(pattern string, spacing int) {
	r.record(Op{Kind: OpBackground, Pattern: pattern, Spacing: spacing})
}

// Text records a text draw on the current page.
func (r *Recorder) Text(box layout.Box, s string, style TextStyle) {
	r.record(Op{Kind: OpText, Box: box, Text: s, TextStyle: style})
}

// Box records a rectangle draw on the current page.
func (r *Recorder) Box(box layout.Box, style BoxStyle) {
	r.record(Op{Kind: OpBox, Box: box, BoxStyle: style})
}

// Line records a segment draw on the current page.
func (r *Recorder) Line(x1, y1, x2, y2 int, style LineStyle) {
	r.record(Op{Kind: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, LineStyle: style})
}

// NamedDest records a named destination anchored to the current page.
func (r *Recorder) NamedDest(key string) {
	r.record(Op{Kind: OpDest, Key: key})
}

// Link records a link annotation on the current page.
func (r *Recorder) Link(box layout.Box, key string) {
	r.record(Op{Kind: OpLink, Box: box, Key: key})
}

// OutlineSection records a bookmark section and evaluates fn for its
// children. Sections nest; fn may call OutlineSection and OutlinePage.
func (r *Recorder) OutlineSection(title string, page int, fn func()) {
	entry := &OutlineEntry{Title: title, Page: page}
	r.sections = append(r.sections, entry)
	defer func() {
		r.sections = r.sections[:len(r.sections)-1]
		r.appendOutline(*entry)
	}()
	if fn != nil {
		fn()
	}
}

// OutlinePage records a leaf bookmark.
func (r *Recorder) OutlinePage(page int, title string) {
	r.appendOutline(OutlineEntry{Title: title, Page: page})
}

func (r *Recorder) appendOutline(e OutlineEntry) {
	if n := len(r.sections); n > 0 {
		parent := r.sections[n-1]
		parent.Children = append(parent.Children, e)
		return
	}
	r.outline = append(r.outline, e)
}

// PageCount returns the number of pages opened so far.
func (r *Recorder) PageCount() int {
	return len(r.pages)
}

// Pages returns the recorded pages in order.
func (r *Recorder) Pages() []Page {
	return r.pages
}

// Outline returns the recorded bookmark forest.
func (r *Recorder) Outline() []OutlineEntry {
	return r.outline
}

// Destinations returns every recorded named destination mapped to the page
// it is anchored on.
func (r *Recorder) Destinations() map[string]int {
	dests := make(map[string]int)
	for _, p := range r.pages {
		for _, op := range p.Ops {
			if op.Kind == OpDest {
				dests[op.Key] = p.Number
			}
		}
	}
	return dests
}
