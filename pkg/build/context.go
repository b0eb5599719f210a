package build

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/planweave/planweave/pkg/calendar"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/events"
	"github.com/planweave/planweave/pkg/layout"
	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
	"github.com/planweave/planweave/pkg/theme"
)

// PageBuilder generates the content of one page type.
type PageBuilder interface {
	// Generate draws the page onto pc.Surface using pc.Layout for
	// geometry. Returning an error aborts the build, wrapped in a
	// [errors.PageError] tagged with the page type.
	Generate(pc *PageContext) error
}

// TitleGenerator is optionally implemented by page builders that can derive
// outline titles from page params ("Week 14", "April"). Builders without it
// fall back to a formatted destination key.
type TitleGenerator interface {
	GenerateTitle(params plan.Params) (string, bool)
}

// PageSource resolves page type tags to their builders.
type PageSource interface {
	// Builder returns the page builder registered for pageType.
	Builder(pageType string) (PageBuilder, bool)
}

// PageContext carries everything a page builder may consult while
// generating one page. It is built fresh per page and discarded afterwards.
type PageContext struct {
	Number int    // Final 1-based page number
	Type   string // Declared page type
	Key    string // Destination key, already anchored on the surface

	// Params is the merged view: build globals under the page's declared
	// params. Week and Month are the typed projections of the "week" and
	// "month" params when present.
	Params plan.Params
	Week   *calendar.Week
	Month  *calendar.Month
	Year   int

	Theme   theme.Theme
	Links   *links.Resolver
	Surface render.Surface
	Events  []events.Occurrence
	Logger  *log.Logger

	// Layout is the page's fresh layout tree root. Builders configure it
	// (direction, children, generators) and call [PageContext.ComputeLayout].
	Layout *layout.Node
}

// ComputeLayout computes bounds for the page's layout tree over the theme's
// content box and returns the root bounds.
func (pc *PageContext) ComputeLayout() layout.Box {
	col, row, w, h := pc.Theme.ContentBox()
	return pc.Layout.ComputeBounds(col, row, w, h)
}

// EventsInWeek returns the page's events falling inside its week, if the
// context carries one.
func (pc *PageContext) EventsInWeek() []events.Occurrence {
	if pc.Week == nil {
		return nil
	}
	return events.InRange(pc.Events, pc.Week.Start, pc.Week.End)
}

// EventsInMonth returns the page's events falling inside its month, if the
// context carries one.
func (pc *PageContext) EventsInMonth() []events.Occurrence {
	if pc.Month == nil {
		return nil
	}
	first, last := pc.Month.Bounds()
	return events.InRange(pc.Events, first, last)
}

// mergeParams overlays page params on the build globals and projects the
// calendar value objects into typed fields. This is the single point where
// opaque param values are dispatched on, so the union match is exhaustive:
// a new value variant fails here instead of misrendering pages.
func mergeParams(globals, params plan.Params) (plan.Params, *calendar.Week, *calendar.Month, error) {
	merged := make(plan.Params, len(globals)+len(params))
	for k, v := range globals {
		merged[k] = v
	}
	for k, v := range params {
		merged[k] = v
	}

	var week *calendar.Week
	var month *calendar.Month

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := merged[k].(type) {
		case plan.Plain:
			// Scalars pass through untyped.
		case plan.WeekRef:
			if k == "week" {
				w := v.Week
				week = &w
			}
		case plan.MonthRef:
			if k == "month" {
				m := v.Month
				month = &m
			}
		default:
			return nil, nil, nil, errors.New(errors.ErrCodeInternal,
				"unhandled param value type %T for %q", merged[k], k)
		}
	}

	return merged, week, month, nil
}
