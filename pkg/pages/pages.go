// Package pages provides the planner's page builders and the registry that
// serves them to the build pipeline by page type.
//
// A builder receives one [build.PageContext] per declared page and draws the
// page onto the context's surface using the layout engine for geometry and
// the context's resolver for cross-page links. Builders are stateless; the
// same instance serves every page of its type.
//
// [Default] wires the stock planner set: annual, monthly, weekly, daily and
// notes. Plans that need custom page types register their own builders on a
// [Registry].
package pages

import (
	"sort"
	"strings"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

// Describer lets a builder advertise a one-line description for CLI
// listings. Optional.
type Describer interface {
	Describe() string
}

// Registry maps page types to their builders.
type Registry struct {
	builders map[string]build.PageBuilder
}

var _ build.PageSource = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]build.PageBuilder)}
}

// Default returns a registry preloaded with the stock planner builders.
func Default() *Registry {
	r := NewRegistry()
	mustRegister(r, "annual", Annual{})
	mustRegister(r, "monthly", Monthly{})
	mustRegister(r, "weekly", Weekly{})
	mustRegister(r, "daily", Daily{})
	mustRegister(r, "notes", Notes{})
	return r
}

// Register adds a builder under a page type.
func (r *Registry) Register(pageType string, b build.PageBuilder) error {
	if err := errors.ValidatePageType(pageType); err != nil {
		return err
	}
	if b == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "page type %q has a nil builder", pageType)
	}
	if _, exists := r.builders[pageType]; exists {
		return errors.New(errors.ErrCodeInvalidConfig, "page type %q already registered", pageType)
	}
	r.builders[pageType] = b
	return nil
}

// Builder returns the builder registered under a page type.
func (r *Registry) Builder(pageType string) (build.PageBuilder, bool) {
	b, ok := r.builders[pageType]
	return b, ok
}

// Types returns the registered page types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.builders))
	for t := range r.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Describe returns the builder's description, or "" when it has none.
func (r *Registry) Describe(pageType string) string {
	if d, ok := r.builders[pageType].(Describer); ok {
		return d.Describe()
	}
	return ""
}

// mustRegister backs the static Default set, where a registration failure
// is a programming error.
func mustRegister(r *Registry, pageType string, b build.PageBuilder) {
	if err := r.Register(pageType, b); err != nil {
		panic(err)
	}
}

// tabGroup reads the page's "tabs" param: the name of the group whose
// members get a tab rail on this page.
func tabGroup(pc *build.PageContext) string {
	v, ok := pc.Params["tabs"]
	if !ok {
		return ""
	}
	p, ok := v.(plan.Plain)
	if !ok {
		return ""
	}
	s, _ := p.V.(string)
	return s
}

// splitPage lays out the shared page chrome on the context's layout root:
// a header band over the full width, and below it the content region with
// an optional tab rail on the right edge. Returned boxes are in grid units.
func splitPage(pc *build.PageContext, withRail bool) (header, content, rail layout.Box) {
	head := &layout.Node{Name: "header", Height: layout.Fixed(pc.Theme.HeaderRows)}
	body := &layout.Node{Name: "body", Flex: 1}

	root := pc.Layout
	root.Direction = layout.DirectionVertical
	root.Gap = 1
	root.Children = []*layout.Node{head, body}

	var contentNode, railNode *layout.Node
	if withRail {
		contentNode = &layout.Node{Name: "content", Flex: 1}
		railNode = &layout.Node{Name: "tabs", Width: layout.Fixed(pc.Theme.TabCols)}
		body.Direction = layout.DirectionHorizontal
		body.Gap = 1
		body.Children = []*layout.Node{contentNode, railNode}
	}

	pc.ComputeLayout()

	header, _ = head.Bounds()
	if withRail {
		content, _ = contentNode.Bounds()
		rail, _ = railNode.Bounds()
		return header, content, rail
	}
	content, _ = body.Bounds()
	return header, content, layout.Box{}
}

// drawHeader stamps the header band: the page title, an optional muted note
// on the right, and a rule along the band's bottom edge.
func drawHeader(pc *build.PageContext, header layout.Box, title, note string) {
	pc.Surface.Text(header, title, render.TextStyle{Size: pc.Theme.TitleSize, Bold: true})
	if note != "" {
		pc.Surface.Text(header, note, render.TextStyle{Size: pc.Theme.SmallSize, Align: render.AlignRight, Muted: true})
	}
	pc.Surface.Line(header.Col, header.Bottom()-1, header.Right(), header.Bottom()-1, render.LineStyle{})
}

// drawNav draws compact previous/next arrows in the header's top-right
// corner, each linking to its resolved page. A miss draws nothing, so the
// first and last pages of a sequence lose the dead arrow.
func drawNav(pc *build.PageContext, header layout.Box, prev, next func() (links.DestinationInfo, bool)) {
	arrow := func(box layout.Box, label string, resolve func() (links.DestinationInfo, bool)) {
		info, ok := resolve()
		if !ok {
			return
		}
		pc.Surface.Box(box, render.BoxStyle{Stroke: true, Rounded: true})
		pc.Surface.Text(box, label, render.TextStyle{Size: pc.Theme.BodySize, Align: render.AlignCenter})
		pc.Surface.Link(box, info.Key)
	}
	arrow(layout.Box{Col: header.Right() - 5, Row: header.Row, Width: 2, Height: 2}, "<", prev)
	arrow(layout.Box{Col: header.Right() - 2, Row: header.Row, Width: 2, Height: 2}, ">", next)
}

// drawTabRail draws one tab per member of the named group down the rail.
// Each tab links to its page; the current page's tab is filled and not
// linked to itself.
func drawTabRail(pc *build.PageContext, rail layout.Box, group string) {
	keys, _, ok := pc.Links.Group(group)
	if !ok || len(keys) == 0 {
		return
	}

	tabs, err := layout.Rows(layout.WithCount(len(keys)), layout.WithGap(1))
	if err != nil {
		return
	}
	tabs.ComputeBounds(rail.Col, rail.Row, rail.Width, rail.Height)

	current := pc.Links.Current().Key
	for i, key := range keys {
		info, found := pc.Links.Lookup(key)
		if !found {
			continue
		}
		cell, _ := tabs.Children[i].Bounds()

		style := render.BoxStyle{Stroke: true, Rounded: true}
		if key == current {
			style.Fill = true
		}
		pc.Surface.Box(cell, style)
		pc.Surface.Text(cell, tabLabel(info), render.TextStyle{Size: pc.Theme.SmallSize, Align: render.AlignCenter})
		if key != current {
			pc.Surface.Link(cell, key)
		}
	}
}

// tabLabel derives a short tab caption from the destination's params.
func tabLabel(info links.DestinationInfo) string {
	if v, ok := info.Params["month"]; ok {
		return plan.ValueString(v)
	}
	if v, ok := info.Params["week"]; ok {
		return "W" + plan.ValueString(v)
	}
	return strings.ToUpper(info.PageType[:1])
}
