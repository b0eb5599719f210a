package events

import (
	"testing"
	"time"

	"github.com/planweave/planweave/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSetValidation(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		wantErr bool
	}{
		{
			name:   "valid one-off",
			events: []Event{{Title: "Release", Date: "2026-04-12"}},
		},
		{
			name:   "valid yearly month day",
			events: []Event{{Title: "Alice", Month: 4, Day: 20, Recurs: RecursYearly}},
		},
		{
			name:   "valid yearly from date",
			events: []Event{{Title: "Bob", Date: "1990-07-03", Recurs: RecursYearly}},
		},
		{
			name:    "missing title",
			events:  []Event{{Date: "2026-04-12"}},
			wantErr: true,
		},
		{
			name:    "one-off without date",
			events:  []Event{{Title: "Floating"}},
			wantErr: true,
		},
		{
			name:    "malformed date",
			events:  []Event{{Title: "Typo", Date: "12.04.2026"}},
			wantErr: true,
		},
		{
			name:    "yearly month out of range",
			events:  []Event{{Title: "Nope", Month: 13, Day: 1, Recurs: RecursYearly}},
			wantErr: true,
		},
		{
			name:    "unknown recurrence",
			events:  []Event{{Title: "Standup", Month: 1, Day: 1, Recurs: "weekly"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewSet(tt.events)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewSet() expected error, got nil")
				}
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidFormat {
					t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSet() error: %v", err)
			}
			if set.Len() != len(tt.events) {
				t.Errorf("Len() = %d, want %d", set.Len(), len(tt.events))
			}
		})
	}
}

func TestForYearExpansion(t *testing.T) {
	set, err := NewSet([]Event{
		{Title: "Launch", Date: "2026-09-01"},
		{Title: "Old launch", Date: "2025-09-01"},
		{Title: "Alice", Month: 4, Day: 20, Recurs: RecursYearly},
		{Title: "Bob", Date: "1990-04-20", Recurs: RecursYearly},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	occs := set.ForYear(2026)
	if len(occs) != 3 {
		t.Fatalf("ForYear(2026) = %d occurrences, want 3", len(occs))
	}

	// Sorted by date, then title: Alice and Bob share April 20.
	if occs[0].Title != "Alice" || !occs[0].Date.Equal(date(2026, time.April, 20)) {
		t.Errorf("occs[0] = %v %s, want Alice on 2026-04-20", occs[0].Title, occs[0].Date)
	}
	if occs[1].Title != "Bob" {
		t.Errorf("occs[1] = %v, want Bob", occs[1].Title)
	}
	if occs[2].Title != "Launch" || !occs[2].Date.Equal(date(2026, time.September, 1)) {
		t.Errorf("occs[2] = %v %s, want Launch on 2026-09-01", occs[2].Title, occs[2].Date)
	}
}

func TestForYearLeapDay(t *testing.T) {
	set, err := NewSet([]Event{
		{Title: "Leapling", Month: 2, Day: 29, Recurs: RecursYearly},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}

	leap := set.ForYear(2024)
	if !leap[0].Date.Equal(date(2024, time.February, 29)) {
		t.Errorf("leap year date = %s, want 2024-02-29", leap[0].Date)
	}

	common := set.ForYear(2026)
	if !common[0].Date.Equal(date(2026, time.February, 28)) {
		t.Errorf("common year date = %s, want 2026-02-28", common[0].Date)
	}
}

func TestInRangeAndOnDate(t *testing.T) {
	set, err := NewSet([]Event{
		{Title: "Mon", Date: "2026-03-30"},
		{Title: "Wed", Date: "2026-04-01"},
		{Title: "Sun", Date: "2026-04-05"},
		{Title: "Next", Date: "2026-04-06"},
	})
	if err != nil {
		t.Fatalf("NewSet() error: %v", err)
	}
	occs := set.ForYear(2026)

	week := InRange(occs, date(2026, time.March, 30), date(2026, time.April, 5))
	if len(week) != 3 {
		t.Fatalf("InRange() = %d occurrences, want 3", len(week))
	}
	if week[0].Title != "Mon" || week[2].Title != "Sun" {
		t.Errorf("InRange() = %v, want Mon..Sun inclusive", week)
	}

	day := OnDate(occs, date(2026, time.April, 1))
	if len(day) != 1 || day[0].Title != "Wed" {
		t.Errorf("OnDate() = %v, want single Wed", day)
	}
}

func TestForYearNilSet(t *testing.T) {
	var s *Set
	if got := s.ForYear(2026); got != nil {
		t.Errorf("nil set ForYear() = %v, want nil", got)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("nil set Len() = %d, want 0", got)
	}
}
