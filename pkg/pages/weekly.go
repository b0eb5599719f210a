package pages

import (
	"fmt"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

// Weekly builds the week-spread page: seven day columns across the content
// region, each with a dated head, the day's events and ruled writing lines.
type Weekly struct{}

// Generate implements build.PageBuilder.
func (Weekly) Generate(pc *build.PageContext) error {
	if pc.Week == nil {
		return errors.New(errors.ErrCodeInvalidPlan, "weekly page needs a week param")
	}
	w := *pc.Week

	group := tabGroup(pc)
	header, content, rail := splitPage(pc, group != "")

	pc.Surface.Background(pc.Theme.Pattern, pc.Theme.PatternSpacing)
	span := fmt.Sprintf("%s - %s", w.Start.Format("Jan 2"), w.End.Format("Jan 2"))
	drawHeader(pc, header, fmt.Sprintf("Week %d", w.Number), span)
	drawNav(pc, header, pc.Links.PrevWeek, pc.Links.NextWeek)
	if group != "" {
		drawTabRail(pc, rail, group)
	}

	cols, err := layout.Columns(layout.WithCount(7), layout.WithGap(1))
	if err != nil {
		return err
	}
	cols.ComputeBounds(content.Col, content.Row, content.Width, content.Height)

	for i, day := range w.Days() {
		box, _ := cols.Children[i].Bounds()

		head := layout.Box{Col: box.Col, Row: box.Row, Width: box.Width, Height: 3}
		pc.Surface.Text(head, day.Format("Mon"), render.TextStyle{Size: pc.Theme.SmallSize, Muted: true})
		pc.Surface.Text(head, day.Format("2"), render.TextStyle{Size: pc.Theme.BodySize, Bold: true, Align: render.AlignRight})
		pc.Surface.Line(box.Col, head.Bottom(), box.Right(), head.Bottom(), render.LineStyle{})

		cursor := head.Bottom() + 1
		for _, occ := range events.OnDate(pc.Events, day) {
			if cursor >= box.Bottom() {
				break
			}
			entry := layout.Box{Col: box.Col, Row: cursor, Width: box.Width, Height: 1}
			pc.Surface.Text(entry, occ.Title, render.TextStyle{Size: pc.Theme.SmallSize})
			cursor += 2
		}

		for y := cursor + 1; y < box.Bottom(); y += 2 {
			pc.Surface.Line(box.Col, y, box.Right(), y, render.LineStyle{Dashed: true})
		}
	}
	return nil
}

// GenerateTitle implements build.TitleGenerator.
func (Weekly) GenerateTitle(params plan.Params) (string, bool) {
	n, ok := plan.NumberOf(params["week"])
	if !ok {
		return "", false
	}
	return fmt.Sprintf("Week %d", n), true
}

// Describe implements Describer.
func (Weekly) Describe() string {
	return "week spread with seven day columns and ruled lines"
}
