// Package layout provides a constraint-based box layout engine on an
// abstract integer grid.
//
// # Overview
//
// Planweave positions page content on a grid of abstract units rather than
// physical coordinates; the rendering surface decides what one unit means on
// paper. This package computes rectangular bounds for a tree of layout nodes,
// given size constraints (fixed sizes, flex weights, minimums and maximums)
// and the space offered by the parent.
//
// All sizes are integers. Distribution arithmetic floors per-child values and
// routes the rounding remainder to a single terminal element on the axis, so
// the allocated sizes plus gaps always equal the available space exactly.
// Fractional remainders are never spread across children.
//
// # Basic Usage
//
// Build a tree of [Node] values, then call [Node.ComputeBounds] on the root
// with the origin and available space. Constraints use the [Dim] option type:
// a dimension is either absent (the zero value) or fixed via [Fixed]:
//
//	header := &layout.Node{Name: "header", Height: layout.Fixed(4)}
//	body := &layout.Node{Name: "body", Flex: 1}
//	page := &layout.Node{
//		Direction: layout.DirectionVertical,
//		Gap:       1,
//		Children:  []*layout.Node{header, body},
//	}
//	page.ComputeBounds(0, 0, 40, 56)
//
// After the call every node in the tree reports its box via [Node.Bounds].
// Bounds are a pure function of constraints and offered space: recomputing
// with identical inputs on an unmodified tree yields identical boxes.
//
// # Containers
//
// A node with a [Direction] arranges its children along that axis. Children
// with a fixed main-axis size keep it; children with a positive [Node.Flex]
// weight share the remaining space proportionally, with the last flex child
// absorbing the rounding remainder; children with neither get zero. The cross
// axis always offers the container's full cross dimension.
//
// # Repeating Generators
//
// [Columns], [Rows] and [Grid] synthesize their children: N equal slots (the
// last absorbing the division remainder) or explicit sizes used verbatim.
// Generated children are replaced on every compute pass, so recomputation
// never accumulates stale nodes. Grid cells are addressed with [Node.Cell].
//
// # Concurrency
//
// Nodes are not safe for concurrent use. Trees are built, computed and read
// by a single goroutine; the build orchestrator constructs a fresh tree per
// page and discards it when the page finishes.
package layout
