package pages

import (
	"fmt"
	"strconv"
	"time"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/calendar"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Monthly builds a month-calendar page: a weekday header row over a 7x6 day
// grid, with day cells linking to their weekly pages and showing the day's
// events.
type Monthly struct{}

// Generate implements build.PageBuilder.
func (Monthly) Generate(pc *build.PageContext) error {
	if pc.Month == nil {
		return errors.New(errors.ErrCodeInvalidPlan, "monthly page needs a month param")
	}
	m := *pc.Month

	group := tabGroup(pc)
	header, content, rail := splitPage(pc, group != "")

	pc.Surface.Background(pc.Theme.Pattern, pc.Theme.PatternSpacing)
	drawHeader(pc, header, fmt.Sprintf("%s %d", m.Name, m.Year), fmt.Sprintf("Q%d", m.Quarter()))
	drawNav(pc, header,
		func() (links.DestinationInfo, bool) { return pc.Links.MonthOffset(-1) },
		func() (links.DestinationInfo, bool) { return pc.Links.MonthOffset(1) })
	if group != "" {
		drawTabRail(pc, rail, group)
	}

	weekdays := &layout.Node{Name: "weekdays", Height: layout.Fixed(2)}
	days := &layout.Node{Name: "days", Flex: 1}
	cal := &layout.Node{
		Name:      "calendar",
		Direction: layout.DirectionVertical,
		Children:  []*layout.Node{weekdays, days},
	}
	cal.ComputeBounds(content.Col, content.Row, content.Width, content.Height)

	wb, _ := weekdays.Bounds()
	cols, err := layout.Columns(layout.WithCount(7))
	if err != nil {
		return err
	}
	cols.ComputeBounds(wb.Col, wb.Row, wb.Width, wb.Height)
	for i, name := range weekdayNames {
		box, _ := cols.Children[i].Bounds()
		pc.Surface.Text(box, name, render.TextStyle{Size: pc.Theme.SmallSize, Align: render.AlignCenter, Muted: true})
	}

	db, _ := days.Bounds()
	grid, err := layout.Grid(7, 6)
	if err != nil {
		return err
	}
	grid.ComputeBounds(db.Col, db.Row, db.Width, db.Height)

	offset := m.FirstWeekday()
	for d := 1; d <= m.Days(); d++ {
		idx := offset + d - 1
		cell := grid.Cell(idx/7, idx%7)
		if cell == nil {
			continue
		}
		box, _ := cell.Bounds()

		pc.Surface.Box(box, render.BoxStyle{Stroke: true})
		pc.Surface.Text(box, strconv.Itoa(d), render.TextStyle{Size: pc.Theme.SmallSize})

		date := time.Date(m.Year, time.Month(m.Number), d, 0, 0, 0, 0, time.UTC)
		for _, occ := range events.OnDate(pc.Events, date) {
			pc.Surface.Text(box, occ.Title,
				render.TextStyle{Size: pc.Theme.SmallSize, Align: render.AlignCenter, Muted: true})
		}

		if wk, year := calendar.WeekOf(date); year == m.Year {
			if info, ok := pc.Links.Resolve("weekly", plan.Params{"week": plan.Val(wk)}); ok {
				pc.Surface.Link(box, info.Key)
			}
		}
	}
	return nil
}

// GenerateTitle implements build.TitleGenerator.
func (Monthly) GenerateTitle(params plan.Params) (string, bool) {
	ref, ok := params["month"].(plan.MonthRef)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %d", ref.Month.Name, ref.Month.Year), true
}

// Describe implements Describer.
func (Monthly) Describe() string {
	return "month calendar with weekday header and linked day cells"
}
