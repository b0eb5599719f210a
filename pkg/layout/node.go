package layout

// Direction selects the main axis along which a container arranges children.
type Direction int

const (
	// DirectionNone marks a leaf node: children, if any, are not arranged.
	DirectionNone Direction = iota
	// DirectionHorizontal arranges children left to right; the main axis is width.
	DirectionHorizontal
	// DirectionVertical arranges children top to bottom; the main axis is height.
	DirectionVertical
)

// Node is a single element in a layout tree. Constraints are expressed in
// grid units; absent constraints ([Dim] zero values) inherit from the space
// offered by the parent. Children are owned exclusively by their parent and
// must not be shared between trees.
type Node struct {
	// Name identifies the node for debugging and generated-child lookup.
	Name string

	// Width and Height fix the node's size when set.
	Width  Dim
	Height Dim

	// Minimum and maximum clamps applied to the resolved size. The minimum
	// is applied first, then the maximum, so the maximum wins when they
	// conflict.
	MinWidth  Dim
	MinHeight Dim
	MaxWidth  Dim
	MaxHeight Dim

	// Flex is the node's share weight of a parent container's remaining
	// space. Only positive weights participate; a fixed main-axis size
	// takes precedence over Flex.
	Flex float64

	// Direction and Gap give the node container semantics.
	Direction Direction
	Gap       int

	Children []*Node

	// regen rebuilds Children from the node's own bounds; set by the
	// repeating generators. Replaces the child slice wholesale each pass.
	regen func(*Node)

	// Grid shape, set by [Grid] for cell addressing.
	gridCols int
	gridRows int

	bounds     Box
	haveBounds bool
}

// ComputeBounds resolves the node's box within the offered space and, for
// containers and generators, lays out the subtree. col/row locate the origin
// offered to this node; width/height are the available extents.
//
// The result is a pure function of the tree's constraints and the arguments:
// calling twice with identical inputs on an unmodified tree yields identical
// bounds throughout.
func (n *Node) ComputeBounds(col, row, width, height int) Box {
	n.bounds = n.resolveBox(col, row, width, height)
	n.haveBounds = true

	switch {
	case n.regen != nil:
		n.regen(n)
	case n.Direction != DirectionNone:
		n.distribute()
	}
	return n.bounds
}

// Bounds returns the node's computed box. The second return is false until
// [Node.ComputeBounds] has run.
func (n *Node) Bounds() (Box, bool) {
	return n.bounds, n.haveBounds
}

// Cell returns the generated child at (row, col) of a [Grid] node, both
// zero-based. Returns nil for out-of-range indices or non-grid nodes.
func (n *Node) Cell(row, col int) *Node {
	if n.gridCols == 0 || row < 0 || col < 0 || row >= n.gridRows || col >= n.gridCols {
		return nil
	}
	idx := row*n.gridCols + col
	if idx >= len(n.Children) {
		return nil
	}
	return n.Children[idx]
}

// resolveBox applies the node's own constraints to the offered space:
// fixed size if present, else inherit; clamp to min, then max.
func (n *Node) resolveBox(col, row, width, height int) Box {
	w := clampDim(n.Width.Or(width), n.MinWidth, n.MaxWidth)
	h := clampDim(n.Height.Or(height), n.MinHeight, n.MaxHeight)
	return Box{Col: col, Row: row, Width: w, Height: h}
}

// clampDim restricts v to [minDim, maxDim] where either bound may be absent.
// The max clamp is applied last, so it wins if the bounds conflict.
func clampDim(v int, minDim, maxDim Dim) int {
	if minDim.IsSet() && v < minDim.Value() {
		v = minDim.Value()
	}
	if maxDim.IsSet() && v > maxDim.Value() {
		v = maxDim.Value()
	}
	return v
}

// distribute allocates the container's main axis to its children and
// recurses. Fixed children keep their size; flex children split what
// remains after fixed sizes and gaps, floored per child, with the last
// flex child absorbing the rounding remainder so the total allocation
// equals the remaining space exactly. Children with neither fixed size
// nor flex get zero.
func (n *Node) distribute() {
	if len(n.Children) == 0 {
		return
	}

	horizontal := n.Direction == DirectionHorizontal
	avail := n.bounds.Height
	cross := n.bounds.Width
	if horizontal {
		avail, cross = cross, avail
	}

	fixedSum := 0
	totalFlex := 0.0
	terminal := -1 // index of the last flex child
	for i, child := range n.Children {
		if main := mainDim(child, horizontal); main.IsSet() {
			fixedSum += main.Value()
			continue
		}
		if child.Flex > 0 {
			totalFlex += child.Flex
			terminal = i
		}
	}

	gaps := n.Gap * max(0, len(n.Children)-1)
	remaining := max(0, avail-fixedSum-gaps)

	// Place children sequentially, advancing the cursor by the allocated
	// main size plus the gap.
	cursor := n.bounds.Row
	if horizontal {
		cursor = n.bounds.Col
	}
	allocated := 0
	for i, child := range n.Children {
		var main int
		switch {
		case mainDim(child, horizontal).IsSet():
			main = mainDim(child, horizontal).Value()
		case child.Flex > 0 && totalFlex > 0:
			if i == terminal {
				main = remaining - allocated
			} else {
				main = int(float64(remaining) * child.Flex / totalFlex)
				allocated += main
			}
		}

		if horizontal {
			child.ComputeBounds(cursor, n.bounds.Row, main, cross)
		} else {
			child.ComputeBounds(n.bounds.Col, cursor, cross, main)
		}
		cursor += main + n.Gap
	}
}

// mainDim returns the child's constraint on the container's main axis.
func mainDim(child *Node, horizontal bool) Dim {
	if horizontal {
		return child.Width
	}
	return child.Height
}
