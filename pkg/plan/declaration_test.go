package plan

import (
	"testing"
	"time"

	"github.com/planweave/planweave/pkg/calendar"
)

func TestDestinationKey(t *testing.T) {
	week := calendar.Week{
		Number: 14,
		Start:  time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		decl *PageDeclaration
		want string
	}{
		{
			name: "explicit id wins",
			decl: &PageDeclaration{Type: "weekly", ID: "intro", Params: Params{"week": Val(week)}},
			want: "intro",
		},
		{
			name: "no params is bare type",
			decl: &PageDeclaration{Type: "cover"},
			want: "cover",
		},
		{
			name: "week ref serializes by number",
			decl: &PageDeclaration{Type: "weekly", Params: Params{"week": Val(week)}},
			want: "weekly:week=14",
		},
		{
			name: "params sorted by key",
			decl: &PageDeclaration{Type: "notes", Params: Params{"pattern": Val("dots"), "index": Val(3)}},
			want: "notes:index=3,pattern=dots",
		},
		{
			name: "month ref serializes by number",
			decl: &PageDeclaration{Type: "monthly", Params: Params{"month": Val(calendar.Month{Number: 4, Name: "April", Year: 2026})}},
			want: "monthly:month=4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.decl.DestinationKey(); got != tt.want {
				t.Errorf("DestinationKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDestinationKeyDeterministic(t *testing.T) {
	decl := &PageDeclaration{Type: "daily", Params: Params{
		"day":   Val(17),
		"month": Val(5),
		"year":  Val(2026),
	}}

	first := decl.DestinationKey()
	for i := 0; i < 20; i++ {
		if got := decl.DestinationKey(); got != first {
			t.Fatalf("DestinationKey() unstable: %q then %q", first, got)
		}
	}
	if first != "daily:day=17,month=5,year=2026" {
		t.Errorf("DestinationKey() = %q, want %q", first, "daily:day=17,month=5,year=2026")
	}
}

func TestTitleFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"weekly:week=14", "Weekly Week 14"},
		{"quarter-dividers", "Quarter Dividers"},
		{"notes_dotted", "Notes Dotted"},
		{"cover", "Cover"},
		{"monthly:month=4", "Monthly Month 4"},
	}

	for _, tt := range tests {
		if got := TitleFromKey(tt.key); got != tt.want {
			t.Errorf("TitleFromKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGroupKeys(t *testing.T) {
	g := &GroupDeclaration{
		Name: "months",
		Pages: []*PageDeclaration{
			{Type: "monthly", Params: Params{"month": Val(1)}},
			{Type: "monthly", Params: Params{"month": Val(2)}},
		},
	}

	got := g.Keys()
	want := []string{"monthly:month=1", "monthly:month=2"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsSection(t *testing.T) {
	leaf := &OutlineDeclaration{Title: "Week 1", Dest: "weekly:week=1"}
	if leaf.IsSection() {
		t.Error("leaf IsSection() = true, want false")
	}

	section := &OutlineDeclaration{Title: "Weeks", Children: []*OutlineDeclaration{leaf}}
	if !section.IsSection() {
		t.Error("section IsSection() = false, want true")
	}
}

func TestParamsClone(t *testing.T) {
	orig := Params{"week": Val(3)}
	clone := orig.Clone()

	clone["week"] = Val(4)
	if n, _ := NumberOf(orig["week"]); n != 3 {
		t.Errorf("original mutated through clone: week = %d, want 3", n)
	}

	if got := Params(nil).Clone(); got != nil {
		t.Errorf("nil Clone() = %v, want nil", got)
	}
}
