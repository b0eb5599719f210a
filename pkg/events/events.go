// Package events loads dated entries (birthdays, holidays, deadlines) from
// YAML files and expands them into concrete occurrences for a planner year.
// Page builders ask for the occurrences in their date range and draw them;
// this package never touches layout or rendering.
package events

import (
	"sort"
	"time"

	"github.com/planweave/planweave/pkg/errors"
)

// Event is one entry from an events file. Either Date names a single
// occurrence, or Month/Day with Recurs "yearly" repeat every year.
type Event struct {
	Title  string `yaml:"title"`
	Date   string `yaml:"date,omitempty"`   // YYYY-MM-DD, one-off
	Month  int    `yaml:"month,omitempty"`  // 1..12, recurring
	Day    int    `yaml:"day,omitempty"`    // 1..31, recurring
	Recurs string `yaml:"recurs,omitempty"` // "yearly" or empty
}

// RecursYearly is the only supported recurrence rule.
const RecursYearly = "yearly"

// Occurrence is an event resolved to a concrete date.
type Occurrence struct {
	Title string
	Date  time.Time
}

// Set holds validated events from one or more files.
type Set struct {
	events []Event
}

// NewSet validates events and collects them into a set.
func NewSet(events []Event) (*Set, error) {
	for i, e := range events {
		if err := validateEvent(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "event %d (%q)", i+1, e.Title)
		}
	}
	s := &Set{events: make([]Event, len(events))}
	copy(s.events, events)
	return s, nil
}

func validateEvent(e Event) error {
	if e.Title == "" {
		return errors.New(errors.ErrCodeInvalidFormat, "missing title")
	}
	switch e.Recurs {
	case "":
		if e.Date == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "one-off event needs a date")
		}
		if _, err := time.Parse(time.DateOnly, e.Date); err != nil {
			return errors.New(errors.ErrCodeInvalidFormat, "bad date %q (want YYYY-MM-DD)", e.Date)
		}
	case RecursYearly:
		month, day := e.Month, e.Day
		if e.Date != "" {
			d, err := time.Parse(time.DateOnly, e.Date)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidFormat, "bad date %q (want YYYY-MM-DD)", e.Date)
			}
			month, day = int(d.Month()), d.Day()
		}
		if month < 1 || month > 12 {
			return errors.New(errors.ErrCodeInvalidFormat, "bad month %d", month)
		}
		if day < 1 || day > 31 {
			return errors.New(errors.ErrCodeInvalidFormat, "bad day %d", day)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown recurrence %q", e.Recurs)
	}
	return nil
}

// Len returns the number of events in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// All returns the raw events in load order.
func (s *Set) All() []Event {
	if s == nil {
		return nil
	}
	return s.events
}

// ForYear expands the set into concrete occurrences falling inside year,
// sorted by date then title. One-off events outside the year are skipped;
// yearly events land on their month/day within the year. A yearly event on
// Feb 29 shifts to Feb 28 in non-leap years.
func (s *Set) ForYear(year int) []Occurrence {
	if s == nil {
		return nil
	}
	var out []Occurrence
	for _, e := range s.events {
		if occ, ok := occurrenceIn(e, year); ok {
			out = append(out, occ)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func occurrenceIn(e Event, year int) (Occurrence, bool) {
	if e.Recurs == RecursYearly {
		month, day := e.Month, e.Day
		if e.Date != "" {
			d, _ := time.Parse(time.DateOnly, e.Date)
			month, day = int(d.Month()), d.Day()
		}
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if int(date.Month()) != month {
			// Day overflowed the month (Feb 29 in a non-leap year, Apr 31).
			date = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
		}
		return Occurrence{Title: e.Title, Date: date}, true
	}
	d, _ := time.Parse(time.DateOnly, e.Date)
	if d.Year() != year {
		return Occurrence{}, false
	}
	return Occurrence{Title: e.Title, Date: d}, true
}

// InRange filters occurrences to from..to inclusive. Both bounds are
// interpreted as whole days.
func InRange(occs []Occurrence, from, to time.Time) []Occurrence {
	var out []Occurrence
	for _, o := range occs {
		if o.Date.Before(from) || o.Date.After(to) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// OnDate filters occurrences to a single day.
func OnDate(occs []Occurrence, date time.Time) []Occurrence {
	return InRange(occs, date, date)
}
