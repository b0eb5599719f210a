// Package inspect visualizes the cross-page link structure of a plan as a
// node-link diagram.
//
// # Overview
//
// This package runs the declare pass only - no pages are rendered - and
// assembles a graph from the frozen link registry: one node per declared
// page, calendar successor edges (next week, next month), group membership
// clusters, and the wrap-around edge of cycling groups. The graph exports
// to Graphviz DOT and renders to SVG in-process.
//
// # Usage
//
// Collect a graph from a plan definition, then render it:
//
//	g, err := inspect.Collect(opts.Define)
//	dot := inspect.ToDOT(g, inspect.Options{})
//	svg, err := inspect.RenderSVG(dot)
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) so week and
// month chains read in page order. Group members sit inside a dashed
// subgraph cluster; the cycle wrap edge is dashed and non-constraining so
// it does not fold the chain into a ring.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; DOT output needs no external tooling.
package inspect
