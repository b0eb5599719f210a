package pages

import (
	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

// Notes builds a free-form notes page: the theme's background pattern over
// the whole content region with a plain header.
//
// Optional params: "title" for the header, "pattern" to override the
// theme's background pattern for this page only.
type Notes struct{}

// Generate implements build.PageBuilder.
func (Notes) Generate(pc *build.PageContext) error {
	group := tabGroup(pc)
	header, content, rail := splitPage(pc, group != "")

	pattern := pc.Theme.Pattern
	if v, ok := pc.Params["pattern"]; ok {
		pattern = plan.ValueString(v)
	}
	pc.Surface.Background(pattern, pc.Theme.PatternSpacing)

	drawHeader(pc, header, notesTitle(pc.Params), "")
	if group != "" {
		drawTabRail(pc, rail, group)
	}

	pc.Surface.Box(content, render.BoxStyle{Stroke: true, Rounded: true})
	return nil
}

// GenerateTitle implements build.TitleGenerator.
func (Notes) GenerateTitle(params plan.Params) (string, bool) {
	return notesTitle(params), true
}

// Describe implements Describer.
func (Notes) Describe() string {
	return "free-form notes page with background pattern"
}

func notesTitle(params plan.Params) string {
	if v, ok := params["title"]; ok {
		return plan.ValueString(v)
	}
	return "Notes"
}
