// Package pkg provides the core libraries for Planweave planner generation.
//
// # Overview
//
// Planweave builds multi-page printable planner documents from declarative
// plan files, resolving cross-page links and bookmarks along the way. The
// pkg directory is organized into four main areas:
//
//  1. Declaration ([plan], [links]) - what pages exist and how they connect
//  2. Rendering ([layout], [render], [pages], [theme]) - how pages draw
//  3. Inputs ([config], [events], [calendar]) - plan files and dated data
//  4. Orchestration ([build], [cache], [inspect]) - the pipeline around them
//
// # Architecture
//
// The typical data flow through Planweave:
//
//	Plan file (TOML/YAML)
//	         ↓
//	    [config] package (parse + validate + defaults)
//	         ↓
//	    [plan] package (declare pages, groups, outline)
//	         ↓
//	    [links] package (freeze destinations, resolve navigation)
//	         ↓
//	    [pages] package (draw each page onto a render.Surface)
//	         ↓
//	    JSON artifact output
//
// # Quick Start
//
// Load a plan file and build the document:
//
//	import (
//	    "context"
//
//	    "github.com/planweave/planweave/pkg/build"
//	    "github.com/planweave/planweave/pkg/config"
//	    "github.com/planweave/planweave/pkg/pages"
//	)
//
//	// 1. Parse the plan file
//	cfg, _ := config.Load("plan.toml")
//
//	// 2. Turn it into build options
//	opts, _ := cfg.BuildOptions()
//	opts.Pages = pages.Default()
//
//	// 3. Run the pipeline
//	runner := build.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), opts)
//
//	// 4. Use the encoded artifact
//	data := result.Artifacts[build.FormatJSON]
//
// # Main Packages
//
// ## Declaration
//
// [plan] - Page, group, and outline declarations with typed parameters.
// Declarations carry stable destination keys derived from the page type and
// its params, so links can be expressed before page numbers exist.
//
// [links] - The two-pass link model. A [links.Registry] freezes the declared
// pages into a destination index with final 1-based page numbers; a
// [links.Resolver] answers navigation queries (next week, previous month,
// next in group) scoped to the page being rendered.
//
// ## Rendering
//
// [layout] - Integer-grid layout trees. Containers split into rows, columns,
// and grids with weighted spans; leaves resolve to cell-exact boxes.
//
// [render] - The drawing contract. [render.Surface] is the abstract target,
// [render.Recorder] captures operations instead of drawing them, and
// [render.RenderJSON] encodes a recording as the JSON interchange artifact.
//
// [pages] - Built-in page builders: annual overview, month calendar, weekly
// spread, daily page, and notes. A [pages.Registry] maps page-type names to
// builders; [pages.Default] returns the stock set.
//
// [theme] - Grid geometry and typography themes with override support and a
// registry whose active selection is snapshotted around every build.
//
// ## Inputs
//
// [config] - Plan-file loading. Parses TOML or YAML into a declarative
// section list and expands it into a build definition.
//
// [events] - Dated event sources loaded from YAML files or doublestar
// globs, expanded into per-year occurrences for the rendered pages.
//
// [calendar] - ISO-8601 week math and month grids shared by the weekly and
// monthly builders.
//
// ## Orchestration
//
// [build] - The pipeline orchestrator (declare → register → render →
// outline) used by the CLI, the watch loop, and tests. Caches expanded
// events and encoded artifacts between runs.
//
// [cache] - Content-addressed file cache with TTLs, plus the key derivation
// for cacheable build products.
//
// [inspect] - Static analysis of a plan's link graph, rendered to Graphviz
// DOT or SVG without building the document.
//
// [errors] - Coded errors with user-facing messages and page-level error
// tagging for build failures.
//
// [observability] - Optional instrumentation hooks for build phases, cache
// operations, and the watch loop.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Define a plan in code instead of a file:
//
//	opts := build.Options{
//	    Title: "Planner 2026",
//	    Year:  2026,
//	    Pages: pages.Default(),
//	    Define: func(b *plan.Builder) error {
//	        b.Page("annual", plan.WithOutlineTitle("Year at a Glance"))
//	        b.Group("months", plan.GroupOptions{Cycle: true, OutlineTitle: "Months"}, func() {
//	            for m := 1; m <= 12; m++ {
//	                b.Page("monthly", plan.WithParam("month", m), plan.WithOutline())
//	            }
//	        })
//	        return nil
//	    },
//	}
//
// Load events for a year:
//
//	set, _ := events.LoadGlob("events/**/*.yaml")
//	occurrences := set.ForYear(2026)
//
// Inspect the link graph:
//
//	g, _ := inspect.Collect(opts.Define)
//	dot := inspect.ToDOT(g, inspect.Options{})
//	svg, _ := inspect.RenderSVG(dot)
//
// Register a custom theme:
//
//	reg := theme.NewRegistry()
//	t := theme.Default()
//	t.Name = "compact"
//	t.PageRows = 56
//	_ = reg.Register(t)
//	_ = reg.Activate("compact")
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/links/...     # Specific package
//	go test -run Example        # Examples only
//
// [plan]: https://pkg.go.dev/github.com/planweave/planweave/pkg/plan
// [links]: https://pkg.go.dev/github.com/planweave/planweave/pkg/links
// [layout]: https://pkg.go.dev/github.com/planweave/planweave/pkg/layout
// [render]: https://pkg.go.dev/github.com/planweave/planweave/pkg/render
// [pages]: https://pkg.go.dev/github.com/planweave/planweave/pkg/pages
// [theme]: https://pkg.go.dev/github.com/planweave/planweave/pkg/theme
// [config]: https://pkg.go.dev/github.com/planweave/planweave/pkg/config
// [events]: https://pkg.go.dev/github.com/planweave/planweave/pkg/events
// [calendar]: https://pkg.go.dev/github.com/planweave/planweave/pkg/calendar
// [build]: https://pkg.go.dev/github.com/planweave/planweave/pkg/build
// [cache]: https://pkg.go.dev/github.com/planweave/planweave/pkg/cache
// [inspect]: https://pkg.go.dev/github.com/planweave/planweave/pkg/inspect
// [errors]: https://pkg.go.dev/github.com/planweave/planweave/pkg/errors
// [observability]: https://pkg.go.dev/github.com/planweave/planweave/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/planweave/planweave/pkg/buildinfo
package pkg
