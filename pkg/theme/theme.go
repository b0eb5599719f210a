// Package theme provides named style presets for planner pages.
//
// A [Theme] bundles the page geometry and decoration defaults that page
// builders consult while laying out content: the grid extent of a page,
// margins, header and tab bands, and the background pattern. All distances
// are expressed in abstract grid units; rendering surfaces decide what a
// unit maps to physically.
//
// Themes are held in a [Registry] together with an active selection. The
// build orchestrator snapshots the selection before a run and restores it
// afterwards, so a build that switches themes never leaks the switch into
// the next run.
package theme

// Pattern names accepted by [Theme.Pattern].
const (
	PatternDots  = "dots"
	PatternGrid  = "grid"
	PatternLines = "lines"
	PatternBlank = "blank"
)

// ValidPatterns enumerates the accepted background pattern names.
var ValidPatterns = map[string]bool{
	PatternDots:  true,
	PatternGrid:  true,
	PatternLines: true,
	PatternBlank: true,
}

// Theme describes the visual defaults for a planner document.
type Theme struct {
	Name        string // Registry key, e.g. "default" or "compact"
	Description string // One-line human description

	// Page geometry in grid units.
	PageCols int // Horizontal extent of a page
	PageRows int // Vertical extent of a page
	Margin   int // Outer margin on all four sides

	// Reserved bands carved out of the page by most builders.
	HeaderRows int // Height of the top header band
	TabCols    int // Width of the side tab rail for cycle navigation

	// Background decoration.
	Pattern        string // One of the Pattern* constants
	PatternSpacing int    // Distance between pattern elements

	// Text sizes in abstract units, interpreted by the surface.
	TitleSize int
	BodySize  int
	SmallSize int
}

// Default returns the built-in theme. It is registered and active in every
// registry created by [NewRegistry].
func Default() Theme {
	return Theme{
		Name:           "default",
		Description:    "Dot-grid planner with side tabs",
		PageCols:       48,
		PageRows:       64,
		Margin:         2,
		HeaderRows:     5,
		TabCols:        4,
		Pattern:        PatternDots,
		PatternSpacing: 2,
		TitleSize:      3,
		BodySize:       2,
		SmallSize:      1,
	}
}

// ContentBox returns the page region inside the margins as origin plus
// extent, in grid units.
func (t Theme) ContentBox() (col, row, width, height int) {
	return t.Margin, t.Margin, t.PageCols - 2*t.Margin, t.PageRows - 2*t.Margin
}

// Overrides carries optional per-build adjustments on top of a base theme.
// Nil fields leave the base value untouched, so a zero Overrides is a no-op.
type Overrides struct {
	Pattern        *string
	PatternSpacing *int
	Margin         *int
	HeaderRows     *int
	TabCols        *int
}

// With returns a copy of t with every present override applied.
func (t Theme) With(o Overrides) Theme {
	if o.Pattern != nil {
		t.Pattern = *o.Pattern
	}
	if o.PatternSpacing != nil {
		t.PatternSpacing = *o.PatternSpacing
	}
	if o.Margin != nil {
		t.Margin = *o.Margin
	}
	if o.HeaderRows != nil {
		t.HeaderRows = *o.HeaderRows
	}
	if o.TabCols != nil {
		t.TabCols = *o.TabCols
	}
	return t
}
