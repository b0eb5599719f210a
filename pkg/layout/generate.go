package layout

import (
	"fmt"

	"github.com/planweave/planweave/pkg/errors"
)

// GenOption configures a repeating generator ([Columns], [Rows], [Grid]).
type GenOption func(*genConfig)

type genConfig struct {
	count     int
	countSet  bool
	sizes     []int
	gap       int
	colGap    int
	colGapSet bool
	rowGap    int
	rowGapSet bool
}

// WithCount sets the number of equally sized generated children. Mutually
// exclusive with [WithSizes].
func WithCount(n int) GenOption {
	return func(c *genConfig) {
		c.count = n
		c.countSet = true
	}
}

// WithSizes sets explicit main-axis sizes for the generated children, used
// verbatim with no remainder logic. Mutually exclusive with [WithCount].
func WithSizes(sizes ...int) GenOption {
	return func(c *genConfig) {
		c.sizes = sizes
	}
}

// WithGap sets the gap between generated children. For [Grid] it applies to
// both axes unless overridden by [WithColGap] or [WithRowGap].
func WithGap(g int) GenOption {
	return func(c *genConfig) {
		c.gap = g
	}
}

// WithColGap sets the gap between grid columns.
func WithColGap(g int) GenOption {
	return func(c *genConfig) {
		c.colGap = g
		c.colGapSet = true
	}
}

// WithRowGap sets the gap between grid rows.
func WithRowGap(g int) GenOption {
	return func(c *genConfig) {
		c.rowGap = g
		c.rowGapSet = true
	}
}

// Columns returns a node that generates vertical column children across its
// own width. Exactly one of [WithCount] or [WithSizes] must be given: count
// mode divides the width equally with the last column absorbing the
// remainder; explicit sizes are used verbatim.
func Columns(opts ...GenOption) (*Node, error) {
	cfg, err := applyGenOptions("columns", opts)
	if err != nil {
		return nil, err
	}
	n := &Node{Name: "columns"}
	n.regen = func(n *Node) {
		widths := spanSizes(n.bounds.Width, cfg)
		children := make([]*Node, len(widths))
		cursor := n.bounds.Col
		for i, w := range widths {
			child := &Node{Name: fmt.Sprintf("col-%d", i+1)}
			child.ComputeBounds(cursor, n.bounds.Row, w, n.bounds.Height)
			children[i] = child
			cursor += w + cfg.gap
		}
		n.Children = children
	}
	return n, nil
}

// Rows returns a node that generates horizontal row children down its own
// height. Sizing rules mirror [Columns].
func Rows(opts ...GenOption) (*Node, error) {
	cfg, err := applyGenOptions("rows", opts)
	if err != nil {
		return nil, err
	}
	n := &Node{Name: "rows"}
	n.regen = func(n *Node) {
		heights := spanSizes(n.bounds.Height, cfg)
		children := make([]*Node, len(heights))
		cursor := n.bounds.Row
		for i, h := range heights {
			child := &Node{Name: fmt.Sprintf("row-%d", i+1)}
			child.ComputeBounds(n.bounds.Col, cursor, n.bounds.Width, h)
			children[i] = child
			cursor += h + cfg.gap
		}
		n.Children = children
	}
	return n, nil
}

// Grid returns a node that generates cols x rows cell children tiling its own
// bounds exactly. Cell sizes are floored; the last column and last row absorb
// whatever space integer division left over. Cells are addressed zero-based
// with [Node.Cell].
func Grid(cols, rows int, opts ...GenOption) (*Node, error) {
	if cols <= 0 || rows <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "grid needs positive dimensions, got %dx%d", cols, rows)
	}
	var cfg genConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.countSet || len(cfg.sizes) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "grid does not accept count or explicit sizes")
	}
	colGap := cfg.gap
	if cfg.colGapSet {
		colGap = cfg.colGap
	}
	rowGap := cfg.gap
	if cfg.rowGapSet {
		rowGap = cfg.rowGap
	}

	n := &Node{Name: "grid", gridCols: cols, gridRows: rows}
	n.regen = func(n *Node) {
		availW := n.bounds.Width
		availH := n.bounds.Height
		cellW := max(0, availW-colGap*(cols-1)) / cols
		cellH := max(0, availH-rowGap*(rows-1)) / rows

		children := make([]*Node, 0, cols*rows)
		for r := 0; r < rows; r++ {
			y := n.bounds.Row + r*(cellH+rowGap)
			h := cellH
			if r == rows-1 {
				h = availH - (y - n.bounds.Row)
			}
			for c := 0; c < cols; c++ {
				x := n.bounds.Col + c*(cellW+colGap)
				w := cellW
				if c == cols-1 {
					w = availW - (x - n.bounds.Col)
				}
				child := &Node{Name: fmt.Sprintf("cell-%d-%d", r+1, c+1)}
				child.ComputeBounds(x, y, w, h)
				children = append(children, child)
			}
		}
		n.Children = children
	}
	return n, nil
}

// applyGenOptions validates the count/sizes exclusivity shared by Columns
// and Rows.
func applyGenOptions(kind string, opts []GenOption) (genConfig, error) {
	var cfg genConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	hasCount := cfg.countSet
	hasSizes := len(cfg.sizes) > 0
	if hasCount == hasSizes {
		return cfg, errors.New(errors.ErrCodeInvalidLayout, "%s needs exactly one of count or sizes", kind)
	}
	if hasCount && cfg.count <= 0 {
		return cfg, errors.New(errors.ErrCodeInvalidLayout, "%s count must be positive, got %d", kind, cfg.count)
	}
	return cfg, nil
}

// spanSizes resolves per-child main-axis sizes for Columns and Rows.
// Count mode floors the per-child size and gives the remainder to the last
// child so the total matches the available space exactly. Explicit sizes are
// copied verbatim.
func spanSizes(avail int, cfg genConfig) []int {
	if len(cfg.sizes) > 0 {
		out := make([]int, len(cfg.sizes))
		copy(out, cfg.sizes)
		return out
	}
	inner := max(0, avail-cfg.gap*(cfg.count-1))
	base := inner / cfg.count
	rem := inner - base*cfg.count

	sizes := make([]int, cfg.count)
	for i := range sizes {
		sizes[i] = base
	}
	sizes[cfg.count-1] = base + rem
	return sizes
}
