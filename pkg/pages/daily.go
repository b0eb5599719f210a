package pages

import (
	"fmt"
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

// Hour band covered by the daily schedule column.
const (
	dayFirstHour = 8
	dayLastHour  = 20
)

// Daily builds a single-day page: an hourly schedule column beside a notes
// column, with the day's events listed on top.
//
// The page takes a "date" param in YYYY-MM-DD form.
type Daily struct{}

// Generate implements build.PageBuilder.
func (Daily) Generate(pc *build.PageContext) error {
	date, err := dailyDate(pc.Params)
	if err != nil {
		return err
	}

	group := tabGroup(pc)
	header, content, rail := splitPage(pc, group != "")

	pc.Surface.Background(pc.Theme.Pattern, pc.Theme.PatternSpacing)
	note := ""
	if wk, year := calendar.WeekOf(date); year == date.Year() {
		note = fmt.Sprintf("Week %d", wk.Number)
	}
	drawHeader(pc, header, date.Format("Monday, January 2"), note)
	drawNav(pc, header, dayNav(pc, date, -1), dayNav(pc, date, 1))
	if group != "" {
		drawTabRail(pc, rail, group)
	}

	schedule := &layout.Node{Name: "schedule", Flex: 2}
	side := &layout.Node{Name: "side", Flex: 1}
	body := &layout.Node{
		Name:      "daily",
		Direction: layout.DirectionHorizontal,
		Gap:       2,
		Children:  []*layout.Node{schedule, side},
	}
	body.ComputeBounds(content.Col, content.Row, content.Width, content.Height)

	sb, _ := schedule.Bounds()
	hours := dayLastHour - dayFirstHour + 1
	rows, err := layout.Rows(layout.WithCount(hours))
	if err != nil {
		return err
	}
	rows.ComputeBounds(sb.Col, sb.Row, sb.Width, sb.Height)
	for i := 0; i < hours; i++ {
		box, _ := rows.Children[i].Bounds()
		pc.Surface.Text(box, fmt.Sprintf("%02d", dayFirstHour+i),
			render.TextStyle{Size: pc.Theme.SmallSize, Muted: true})
		pc.Surface.Line(box.Col, box.Bottom()-1, box.Right(), box.Bottom()-1, render.LineStyle{})
	}

	nb, _ := side.Bounds()
	cursor := nb.Row
	for _, occ := range events.OnDate(pc.Events, date) {
		if cursor >= nb.Bottom() {
			break
		}
		entry := layout.Box{Col: nb.Col, Row: cursor, Width: nb.Width, Height: 1}
		pc.Surface.Text(entry, occ.Title, render.TextStyle{Size: pc.Theme.SmallSize, Bold: true})
		cursor += 2
	}
	for y := cursor + 1; y < nb.Bottom(); y += 2 {
		pc.Surface.Line(nb.Col, y, nb.Right(), y, render.LineStyle{Dashed: true})
	}
	return nil
}

// GenerateTitle implements build.TitleGenerator.
func (Daily) GenerateTitle(params plan.Params) (string, bool) {
	date, err := dailyDate(params)
	if err != nil {
		return "", false
	}
	return date.Format("January 2"), true
}

// Describe implements Describer.
func (Daily) Describe() string {
	return "single day with hourly schedule and notes column"
}

// dailyDate extracts and parses the required "date" param.
func dailyDate(params plan.Params) (time.Time, error) {
	v, ok := params["date"]
	if !ok {
		return time.Time{}, errors.New(errors.ErrCodeInvalidPlan, "daily page needs a date param")
	}
	date, err := time.Parse(time.DateOnly, plan.ValueString(v))
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidPlan, err, "daily page date")
	}
	return date, nil
}

// dayNav resolves the daily page offset by delta days, missing when no such
// page is declared.
func dayNav(pc *build.PageContext, date time.Time, delta int) func() (links.DestinationInfo, bool) {
	return func() (links.DestinationInfo, bool) {
		target := date.AddDate(0, 0, delta).Format(time.DateOnly)
		return pc.Links.Resolve("daily", plan.Params{"date": plan.Val(target)})
	}
}
