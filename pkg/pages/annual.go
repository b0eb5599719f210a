package pages

import (
	"fmt"
	"strconv"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/calendar"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

// Annual builds the year-overview page: a 3x4 grid of month cells, each
// linking to its monthly page when one is declared.
type Annual struct{}

// Generate implements build.PageBuilder.
func (Annual) Generate(pc *build.PageContext) error {
	group := tabGroup(pc)
	header, content, rail := splitPage(pc, group != "")

	pc.Surface.Background(pc.Theme.Pattern, pc.Theme.PatternSpacing)
	drawHeader(pc, header, strconv.Itoa(pc.Year), "year overview")
	if group != "" {
		drawTabRail(pc, rail, group)
	}

	grid, err := layout.Grid(3, 4, layout.WithGap(1))
	if err != nil {
		return err
	}
	grid.ComputeBounds(content.Col, content.Row, content.Width, content.Height)

	for i, m := range calendar.Months(pc.Year) {
		cell := grid.Cell(i/3, i%3)
		if cell == nil {
			continue
		}
		box, _ := cell.Bounds()

		pc.Surface.Box(box, render.BoxStyle{Stroke: true, Rounded: true})
		pc.Surface.Text(box, m.Name, render.TextStyle{Size: pc.Theme.BodySize, Bold: true})

		first, last := m.Bounds()
		if n := len(events.InRange(pc.Events, first, last)); n > 0 {
			pc.Surface.Text(box, fmt.Sprintf("%d events", n),
				render.TextStyle{Size: pc.Theme.SmallSize, Align: render.AlignRight, Muted: true})
		}

		if info, ok := pc.Links.Resolve("monthly", plan.Params{"month": plan.Val(m)}); ok {
			pc.Surface.Link(box, info.Key)
		}
	}
	return nil
}

// GenerateTitle implements build.TitleGenerator.
func (Annual) GenerateTitle(params plan.Params) (string, bool) {
	return "Calendar", true
}

// Describe implements Describer.
func (Annual) Describe() string {
	return "year overview with one linked cell per month"
}
