// Package calendar provides the date arithmetic behind planner pages:
// ISO-8601 week enumeration, month metadata, and the value objects that
// page parameters carry.
//
// Weeks run Monday through Sunday. A planner year covers every ISO week
// whose week-based year equals the planner year, so the first week may
// start in late December of the previous year and the last may end in
// early January of the next.
package calendar

import "time"

// Week is one ISO week of a planner year. Number is the 1-based ISO week
// number; Start and End are the Monday and Sunday, at midnight UTC.
type Week struct {
	Number int
	Start  time.Time
	End    time.Time
}

// Days returns the seven days of the week in order.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether t falls within the week.
func (w Week) Contains(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

// Month is one calendar month of a planner year.
type Month struct {
	Number int // 1-based month number
	Name   string
	Year   int
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day zero of the next month is this month's last day.
	return time.Date(m.Year, time.Month(m.Number)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the month's first day, shifted so
// Monday is 0 and Sunday is 6 to match planner grids.
func (m Month) FirstWeekday() int {
	wd := time.Date(m.Year, time.Month(m.Number), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 6) % 7
}

// Quarter returns the month's 1-based quarter.
func (m Month) Quarter() int {
	return (m.Number-1)/3 + 1
}

// Bounds returns the month's first and last day at midnight UTC.
func (m Month) Bounds() (first, last time.Time) {
	first = time.Date(m.Year, time.Month(m.Number), 1, 0, 0, 0, 0, time.UTC)
	last = time.Date(m.Year, time.Month(m.Number)+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

// WeeksInYear returns the number of ISO weeks in the year (52 or 53).
func WeeksInYear(year int) int {
	// December 28 always falls in the year's last ISO week.
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// Weeks enumerates the ISO weeks of the year in order.
func Weeks(year int) []Week {
	count := WeeksInYear(year)
	weeks := make([]Week, 0, count)

	start := mondayOfWeekOne(year)
	for i := 0; i < count; i++ {
		weeks = append(weeks, Week{
			Number: i + 1,
			Start:  start,
			End:    start.AddDate(0, 0, 6),
		})
		start = start.AddDate(0, 0, 7)
	}
	return weeks
}

// WeekOf returns the planner week containing t, along with the ISO
// week-based year it belongs to.
func WeekOf(t time.Time) (Week, int) {
	isoYear, isoWeek := t.ISOWeek()
	start := mondayOfWeekOne(isoYear).AddDate(0, 0, (isoWeek-1)*7)
	return Week{Number: isoWeek, Start: start, End: start.AddDate(0, 0, 6)}, isoYear
}

// Months enumerates the twelve months of the year.
func Months(year int) []Month {
	months := make([]Month, 12)
	for i := range months {
		months[i] = Month{
			Number: i + 1,
			Name:   time.Month(i + 1).String(),
			Year:   year,
		}
	}
	return months
}

// mondayOfWeekOne locates the Monday starting ISO week 1: January 4 always
// falls in week 1, so back up to its Monday.
func mondayOfWeekOne(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset)
}
