package plan

import (
	"fmt"

	"github.com/planweave/planweave/pkg/calendar"
)

// Value is a page parameter value: a plain scalar or one of the calendar
// value objects. The union is closed; consumers match it exhaustively with
// a type switch over [Plain], [WeekRef] and [MonthRef].
type Value interface {
	isValue()
}

// Plain wraps an ordinary scalar parameter (string, int, bool, ...).
type Plain struct {
	V any
}

func (Plain) isValue() {}

// WeekRef wraps an ISO week reference.
type WeekRef struct {
	Week calendar.Week
}

func (WeekRef) isValue() {}

// MonthRef wraps a calendar month reference.
type MonthRef struct {
	Month calendar.Month
}

func (MonthRef) isValue() {}

// Val wraps an arbitrary Go value as a parameter [Value]. Calendar weeks
// and months become [WeekRef] and [MonthRef]; a Value passes through;
// everything else becomes [Plain].
func Val(v any) Value {
	switch v := v.(type) {
	case Value:
		return v
	case calendar.Week:
		return WeekRef{Week: v}
	case calendar.Month:
		return MonthRef{Month: v}
	default:
		return Plain{V: v}
	}
}

// NumberOf returns the numeric identity of a value: the week number for
// [WeekRef], the month number for [MonthRef], and the value itself for an
// integer [Plain]. The second return is false when the value has no
// numeric identity.
func NumberOf(v Value) (int, bool) {
	switch v := v.(type) {
	case WeekRef:
		return v.Week.Number, true
	case MonthRef:
		return v.Month.Number, true
	case Plain:
		if n, ok := v.V.(int); ok {
			return n, true
		}
	}
	return 0, false
}

// ValueString renders a value's canonical string form, used for key
// serialization and as the link comparator's last resort.
func ValueString(v Value) string {
	switch v := v.(type) {
	case WeekRef:
		return fmt.Sprintf("%d", v.Week.Number)
	case MonthRef:
		return fmt.Sprintf("%d", v.Month.Number)
	case Plain:
		return fmt.Sprintf("%v", v.V)
	default:
		return fmt.Sprintf("%v", v)
	}
}
