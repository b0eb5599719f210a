// Package render defines the drawing surface planner builds draw against,
// plus an in-memory [Recorder] implementation of it.
//
// # Overview
//
// A [Surface] accepts grid-unit bounding boxes from the layout engine and
// turns them into physical output: pages, background stamps, text, shapes,
// named destinations, link annotations, and a nested outline. The build
// orchestrator drives a surface one page at a time and never inspects what
// the surface produced; physical document encoding is entirely the
// surface's concern.
//
// # Recording
//
// The [Recorder] captures every operation instead of drawing:
//
//	rec := render.NewRecorder()
//	rec.StartPage()
//	rec.Text(box, "April", render.TextStyle{Size: 3})
//	data, err := render.RenderJSON(rec, render.WithJSONTitle("Planner 2026"))
//
// The recorded operation log backs the JSON artifact (see [RenderJSON]),
// the inspect tooling, and most build tests.
//
// # Outline
//
// Outline primitives address pages by their final 1-based page number; the
// build orchestrator resolves destination keys to page numbers before
// calling them. A section with page number 0 is a non-clickable header.
package render
