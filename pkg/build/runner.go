package build

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/planweave/planweave/pkg/buildinfo"
	"github.com/planweave/planweave/pkg/cache"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/observability"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
	"github.com/planweave/planweave/pkg/theme"
)

// Runner encapsulates build execution with caching.
// Both the CLI and the watch loop use this to avoid duplicating phase and
// caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store build results. Each Execute call owns its options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete declare → register → render → outline pipeline.
//
// The phases run single-threaded with no suspension points; ctx is consulted
// only by the cache backends. Event ingestion happens once, synchronously,
// between registration and rendering.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		BuildID:   uuid.NewString(),
		Phase:     PhaseIdle,
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("build_id", result.BuildID)

	// The active theme selection is the only shared state a build touches.
	// Restore it on every exit path so one build cannot leak configuration
	// into the next.
	snap := opts.Themes.Snapshot()
	defer opts.Themes.Restore(snap)

	if opts.Theme != "" {
		if err := opts.Themes.Activate(opts.Theme); err != nil {
			return nil, err
		}
	}
	active := opts.Themes.Active().With(opts.ThemeOverrides)

	// Phase 1: Declare
	declareStart := time.Now()
	observability.Build().OnDeclareStart(ctx, opts.Title, opts.Year)
	builder := plan.NewBuilder(plan.WithTitleLookup(titleLookup(opts.Pages)))
	declareErr := opts.Define(builder)
	if declareErr == nil {
		declareErr = builder.Err()
	}
	observability.Build().OnDeclareComplete(ctx, opts.Title, opts.Year,
		len(builder.Pages()), time.Since(declareStart), declareErr)
	if declareErr != nil {
		return nil, fmt.Errorf("declare: %w", declareErr)
	}
	result.Phase = PhaseDeclared
	result.Stats.DeclareTime = time.Since(declareStart)
	result.Stats.PageCount = len(builder.Pages())
	result.Stats.GroupCount = len(builder.Groups())
	result.Stats.OutlineCount = countOutline(builder.Outline())

	logger.Info("collected declarations",
		"pages", result.Stats.PageCount,
		"groups", result.Stats.GroupCount,
		"duration", result.Stats.DeclareTime)

	// Phase 2: Register
	registry, err := links.Build(builder.Pages(), builder.Groups())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	result.Phase = PhaseRegistered
	result.Registry = registry

	// Event ingestion is the one external collaborator; it runs to
	// completion before any page renders.
	occs, eventsHit, err := r.loadEvents(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	result.Stats.EventCount = len(occs)
	result.CacheInfo.EventsHit = eventsHit

	planHash := hashPlan(builder, occs, active, opts)

	// A recorded build whose inputs are unchanged can skip rendering
	// entirely and serve the encoded artifacts from cache.
	if opts.Surface == nil && !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, planHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.ArtifactHit = true
			result.Phase = PhaseDone
			logger.Info("served artifacts from cache", "formats", opts.Formats)
			return result, nil
		}
	}

	surface := opts.Surface
	if surface == nil {
		rec := render.NewRecorder()
		surface = rec
		result.Recorder = rec
	}

	// Phase 3: Render
	renderStart := time.Now()
	result.Phase = PhaseRendering
	observability.Build().OnRenderStart(ctx, result.Stats.PageCount)
	var renderErr error
	for i, decl := range builder.Pages() {
		if renderErr = r.renderPage(surface, registry, decl, i+1, occs, active, opts, logger); renderErr != nil {
			break
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Build().OnRenderComplete(ctx, result.Stats.PageCount, result.Stats.RenderTime, renderErr)
	if renderErr != nil {
		return nil, fmt.Errorf("render: %w", renderErr)
	}

	logger.Info("rendered pages",
		"pages", result.Stats.PageCount,
		"events", result.Stats.EventCount,
		"duration", result.Stats.RenderTime)

	// Phase 4: Outline
	outlineStart := time.Now()
	emitOutline(surface, registry, builder.Outline())
	result.Phase = PhaseOutlined
	result.Stats.OutlineTime = time.Since(outlineStart)

	if result.Recorder != nil {
		encodeStart := time.Now()
		observability.Build().OnEncodeStart(ctx, opts.Formats)
		var encodeErr error
		for _, format := range opts.Formats {
			data, err := encodeArtifact(result.Recorder, format, active, opts)
			if err != nil {
				encodeErr = fmt.Errorf("encode %s: %w", format, err)
				break
			}
			result.Artifacts[format] = data

			key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		observability.Build().OnEncodeComplete(ctx, opts.Formats, time.Since(encodeStart), encodeErr)
		if encodeErr != nil {
			return nil, encodeErr
		}
	}

	result.Phase = PhaseDone
	logger.Info("build complete",
		"pages", result.Stats.PageCount,
		"outline_entries", result.Stats.OutlineCount,
		"formats", opts.Formats)
	return result, nil
}

// renderPage renders one declared page: a new surface page, the page's
// named destination anchor, then the page builder against a fresh layout
// tree and a resolver scoped to this page.
func (r *Runner) renderPage(surface render.Surface, registry *links.Registry, decl *plan.PageDeclaration,
	number int, occs []events.Occurrence, active theme.Theme, opts Options, logger *log.Logger) error {

	pageBuilder, ok := opts.Pages.Builder(decl.Type)
	if !ok {
		return errors.New(errors.ErrCodeUnknownPageType, "no page builder registered for type %q", decl.Type)
	}

	key := decl.DestinationKey()
	merged, week, month, err := mergeParams(opts.Globals, decl.Params)
	if err != nil {
		return err
	}

	resolver, ok := registry.ResolverFor(key)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "page %q missing from registry", key)
	}

	surface.StartPage()
	surface.NamedDest(key)

	pc := &PageContext{
		Number:  number,
		Type:    decl.Type,
		Key:     key,
		Params:  merged,
		Week:    week,
		Month:   month,
		Year:    opts.Year,
		Theme:   active,
		Links:   resolver,
		Surface: surface,
		Events:  occs,
		Logger:  logger.With("page", number, "type", decl.Type),
		Layout:  &layout.Node{Name: "page"},
	}

	logger.Debug("rendering page", "page", number, "type", decl.Type, "key", key)
	if err := pageBuilder.Generate(pc); err != nil {
		return &errors.PageError{PageType: decl.Type, Cause: err}
	}
	return nil
}

// loadEvents resolves the build's event occurrences: a preloaded set wins,
// then the glob (cached by pattern and year), then none.
func (r *Runner) loadEvents(ctx context.Context, opts Options) ([]events.Occurrence, bool, error) {
	if opts.Events != nil {
		return opts.Events.ForYear(opts.Year), false, nil
	}
	if opts.EventsGlob == "" {
		return nil, false, nil
	}

	key := r.Keyer.EventsKey(opts.EventsGlob, opts.Year)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var occs []events.Occurrence
			if err := json.Unmarshal(data, &occs); err == nil {
				observability.Cache().OnCacheHit(ctx, "events")
				return occs, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "events")

	set, err := events.LoadGlob(opts.EventsGlob)
	if err != nil {
		return nil, false, err
	}
	occs := set.ForYear(opts.Year)

	if data, err := json.Marshal(occs); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLEvents)
		observability.Cache().OnCacheSet(ctx, "events", len(data))
	}
	return occs, false, nil
}

// cachedArtifacts tries to serve every requested format from cache.
func (r *Runner) cachedArtifacts(ctx context.Context, planHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// encodeArtifact renders one artifact format from the recorded build.
func encodeArtifact(rec *render.Recorder, format string, active theme.Theme, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.RenderJSON(rec,
			render.WithJSONTitle(opts.Title),
			render.WithJSONTheme(active.Name),
			render.WithJSONGenerator(buildinfo.Short()),
			render.WithJSONGrid(active.PageCols, active.PageRows),
		)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown artifact format %q", format)
}

// emitOutline walks the declared outline forest and emits the bookmark tree
// against the final page-number index. Entries whose destination does not
// resolve are dropped silently; sections degrade to non-clickable headers
// rather than losing their children.
func emitOutline(surface render.Surface, registry *links.Registry, entries []*plan.OutlineDeclaration) {
	for _, entry := range entries {
		page := 0
		if entry.Dest != "" {
			info, ok := registry.Lookup(entry.Dest)
			if !ok && len(entry.Children) == 0 {
				continue
			}
			if ok {
				page = info.PageNumber
			}
		}

		switch {
		case len(entry.Children) > 0:
			children := entry.Children
			surface.OutlineSection(entry.Title, page, func() {
				emitOutline(surface, registry, children)
			})
		case entry.Dest == "":
			// Declared header with no children stays a bare section.
			surface.OutlineSection(entry.Title, 0, nil)
		default:
			surface.OutlinePage(page, entry.Title)
		}
	}
}

// countOutline counts every node of the outline forest.
func countOutline(entries []*plan.OutlineDeclaration) int {
	n := 0
	for _, entry := range entries {
		n += 1 + countOutline(entry.Children)
	}
	return n
}

// titleLookup adapts the page source's optional title generators to the
// declaration builder's pluggable lookup.
func titleLookup(src PageSource) plan.TitleFunc {
	return func(pageType string, params plan.Params) (string, bool) {
		builder, ok := src.Builder(pageType)
		if !ok {
			return "", false
		}
		gen, ok := builder.(TitleGenerator)
		if !ok {
			return "", false
		}
		return gen.GenerateTitle(params)
	}
}

// hashPlan fingerprints everything that shapes the recorded artifact: the
// declarations, the expanded events, the effective theme, and the document
// options.
func hashPlan(b *plan.Builder, occs []events.Occurrence, active theme.Theme, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "title=%s;year=%d;theme=%+v;", opts.Title, opts.Year, active)
	fmt.Fprintf(&buf, "globals=%s;", paramsFingerprint(opts.Globals))

	for _, p := range b.Pages() {
		fmt.Fprintf(&buf, "p:%s:%s;", p.Type, p.DestinationKey())
	}
	for _, g := range b.Groups() {
		fmt.Fprintf(&buf, "g:%s:%t:%v;", g.Name, g.Cycle, g.Keys())
	}
	writeOutlineFingerprint(&buf, b.Outline())

	for _, occ := range occs {
		fmt.Fprintf(&buf, "e:%s:%s;", occ.Date.Format(time.DateOnly), occ.Title)
	}
	return cache.Hash(buf.Bytes())
}

func paramsFingerprint(p plan.Params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%s,", k, plan.ValueString(p[k]))
	}
	return buf.String()
}

func writeOutlineFingerprint(buf *bytes.Buffer, entries []*plan.OutlineDeclaration) {
	for _, entry := range entries {
		fmt.Fprintf(buf, "o:%s:%s(", entry.Title, entry.Dest)
		writeOutlineFingerprint(buf, entry.Children)
		buf.WriteString(");")
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
