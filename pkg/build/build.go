// Package build orchestrates the planner document pipeline.
//
// This package implements the complete declare → register → render →
// outline pipeline shared by the CLI, the watch loop, and tests. By
// centralizing this logic, every entry point gets identical phase ordering,
// error tagging and theme hygiene.
//
// # Architecture
//
// A build executes as strictly ordered phases:
//
//  1. Declare: run the plan definition against a [plan.Builder], producing
//     the ordered page, group, and outline declarations. Nothing renders.
//  2. Register: freeze the declarations into a [links.Registry] that maps
//     destination keys to final 1-based page numbers.
//  3. Render: for each declared page in order, open a surface page, anchor
//     its named destination, and invoke its page builder with a scoped
//     link resolver and a fresh layout tree.
//  4. Outline: walk the declared outline forest, resolve destinations to
//     page numbers, and emit the bookmark tree to the surface. Entries
//     whose destinations no longer resolve are dropped silently.
//
// The phases are single-threaded and never re-enter one another. The only
// shared state a build touches is the active theme selection, which is
// snapshotted on entry and restored on every exit path.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := build.NewRunner(cache, nil, logger)
//	opts := build.Options{
//	    Title: "Planner 2026",
//	    Year:  2026,
//	    Pages: pages.NewRegistry(),
//	    Define: func(b *plan.Builder) error {
//	        b.Page("cover", plan.WithID("cover"))
//	        return nil
//	    },
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact := result.Artifacts[build.FormatJSON]
package build

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planweave/planweave/pkg/cache"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
	"github.com/planweave/planweave/pkg/theme"
)

// Phase names the orchestrator's states in execution order.
type Phase string

// Build phases. A successful build ends in PhaseDone; a failed build's
// error message carries the phase that aborted it.
const (
	PhaseIdle       Phase = "idle"
	PhaseDeclared   Phase = "declared"
	PhaseRegistered Phase = "registered"
	PhaseRendering  Phase = "rendering"
	PhaseOutlined   Phase = "outlined"
	PhaseDone       Phase = "done"
)

// FormatJSON is the recorded-artifact interchange format.
const FormatJSON = "json"

// ValidFormats is the set of supported artifact formats. Physical formats
// (PDF and friends) are produced by external surfaces, not by this core.
var ValidFormats = map[string]bool{
	FormatJSON: true,
}

// DefineFunc is a plan definition: it declares pages, groups, and outline
// entries against the builder. It must not draw.
type DefineFunc func(b *plan.Builder) error

// Options contains all configuration for one build.
// The value fields support JSON serialization for config files and logs.
type Options struct {
	// Document options
	Title string `json:"title,omitempty"`
	Year  int    `json:"year,omitempty"`

	// Theme selection for this build; empty keeps the registry's active
	// theme. Overrides apply on top of the selected theme.
	Theme          string          `json:"theme,omitempty"`
	ThemeOverrides theme.Overrides `json:"-"`

	// EventsGlob loads event files matching a doublestar pattern. Ignored
	// when Events is set.
	EventsGlob string `json:"events_glob,omitempty"`

	// Formats selects the artifacts to encode from the recording surface.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Globals are merged under every page's params; page params win.
	Globals plan.Params `json:"-"`

	// Runtime collaborators (not serialized)
	Define  DefineFunc      `json:"-"`
	Pages   PageSource      `json:"-"`
	Surface render.Surface  `json:"-"` // nil records in memory
	Themes  *theme.Registry `json:"-"`
	Events  *events.Set     `json:"-"`
	Logger  *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a build.
type Result struct {
	// BuildID uniquely identifies this run in logs.
	BuildID string

	// Phase is the last phase reached; PhaseDone on success.
	Phase Phase

	// Registry is the frozen destination index for the built document.
	Registry *links.Registry

	// Recorder holds the recorded page operations when the build rendered
	// to the internal recording surface; nil when the caller supplied a
	// custom surface.
	Recorder *render.Recorder

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains phase timing and size information.
	Stats Stats

	// CacheInfo tracks which products came from cache.
	CacheInfo CacheInfo
}

// Stats contains build execution statistics.
type Stats struct {
	PageCount    int
	GroupCount   int
	OutlineCount int
	EventCount   int

	DeclareTime time.Duration
	RenderTime  time.Duration
	OutlineTime time.Duration
}

// CacheInfo tracks cache hits for cacheable build products.
type CacheInfo struct {
	EventsHit   bool // Whether expanded events came from cache
	ArtifactHit bool // Whether the encoded artifact came from cache
}

// ValidateFormat checks that an artifact format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Define == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "a plan definition is required")
	}
	if o.Pages == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "a page source is required")
	}

	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	if o.Year < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid year %d", o.Year)
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Themes == nil {
		o.Themes = theme.NewRegistry()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for artifact caching.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme,
		Year:   o.Year,
	}
}
