package render

import (
	"testing"

	"github.com/planweave/planweave/pkg/layout"
)

func TestRecorderPageNumbering(t *testing.T) {
	rec := NewRecorder()

	rec.StartPage()
	rec.StartPage()
	rec.StartPage()

	if got := rec.PageCount(); got != 3 {
		t.Fatalf("PageCount() = %d, want 3", got)
	}
	for i, p := range rec.Pages() {
		if p.Number != i+1 {
			t.Errorf("Pages()[%d].Number = %d, want %d", i, p.Number, i+1)
		}
	}
}

func TestRecorderOpsOnCurrentPage(t *testing.T) {
	rec := NewRecorder()
	box := layout.Box{Col: 2, Row: 3, Width: 10, Height: 4}

	rec.StartPage()
	rec.Background("dots", 2)
	rec.Text(box, "April", TextStyle{Size: 3, Align: AlignCenter})
	rec.StartPage()
	rec.Box(box, BoxStyle{Stroke: true})
	rec.Line(0, 5, 40, 5, LineStyle{Dashed: true})

	pages := rec.Pages()
	if len(pages[0].Ops) != 2 {
		t.Fatalf("page 1 ops = %d, want 2", len(pages[0].Ops))
	}
	if len(pages[1].Ops) != 2 {
		t.Fatalf("page 2 ops = %d, want 2", len(pages[1].Ops))
	}

	bg := pages[0].Ops[0]
	if bg.Kind != OpBackground || bg.Pattern != "dots" || bg.Spacing != 2 {
		t.Errorf("op = %+v, want dots background with spacing 2", bg)
	}
	text := pages[0].Ops[1]
	if text.Kind != OpText || text.Text != "April" || text.Box != box {
		t.Errorf("op = %+v, want April text in %v", text, box)
	}
	if text.TextStyle.Align != AlignCenter {
		t.Errorf("text align = %q, want %q", text.TextStyle.Align, AlignCenter)
	}
	line := pages[1].Ops[1]
	if line.Kind != OpLine || line.X2 != 40 || !line.LineStyle.Dashed {
		t.Errorf("op = %+v, want dashed line to x=40", line)
	}
}

func TestRecorderImplicitFirstPage(t *testing.T) {
	rec := NewRecorder()
	rec.Text(layout.Box{Width: 5, Height: 1}, "stray", TextStyle{})

	if got := rec.PageCount(); got != 1 {
		t.Fatalf("PageCount() = %d, want 1", got)
	}
	if got := len(rec.Pages()[0].Ops); got != 1 {
		t.Errorf("page 1 ops = %d, want 1", got)
	}
}

func TestRecorderDestinations(t *testing.T) {
	rec := NewRecorder()

	rec.StartPage()
	rec.NamedDest("cover")
	rec.StartPage()
	rec.NamedDest("weekly:week=1")
	rec.StartPage()
	rec.NamedDest("weekly:week=2")
	rec.Link(layout.Box{Width: 4, Height: 1}, "weekly:week=1")

	dests := rec.Destinations()
	want := map[string]int{"cover": 1, "weekly:week=1": 2, "weekly:week=2": 3}
	if len(dests) != len(want) {
		t.Fatalf("Destinations() = %v, want %v", dests, want)
	}
	for key, page := range want {
		if dests[key] != page {
			t.Errorf("Destinations()[%q] = %d, want %d", key, dests[key], page)
		}
	}
}

func TestRecorderOutlineNesting(t *testing.T) {
	rec := NewRecorder()

	rec.OutlinePage(1, "Cover")
	rec.OutlineSection("Quarter 1", 2, func() {
		rec.OutlinePage(2, "January")
		rec.OutlineSection("Week 1", 3, func() {
			rec.OutlinePage(3, "Monday")
		})
	})
	rec.OutlinePage(9, "Notes")

	outline := rec.Outline()
	if len(outline) != 3 {
		t.Fatalf("Outline() roots = %d, want 3", len(outline))
	}
	if outline[0].Title != "Cover" || outline[0].Page != 1 {
		t.Errorf("root[0] = %+v, want Cover on page 1", outline[0])
	}

	q1 := outline[1]
	if q1.Title != "Quarter 1" || q1.Page != 2 {
		t.Errorf("root[1] = %+v, want Quarter 1 on page 2", q1)
	}
	if len(q1.Children) != 2 {
		t.Fatalf("Quarter 1 children = %d, want 2", len(q1.Children))
	}
	week := q1.Children[1]
	if week.Title != "Week 1" || len(week.Children) != 1 || week.Children[0].Title != "Monday" {
		t.Errorf("nested section = %+v, want Week 1 with Monday child", week)
	}

	if outline[2].Title != "Notes" || outline[2].Page != 9 {
		t.Errorf("root[2] = %+v, want Notes on page 9", outline[2])
	}
}

func TestRecorderOutlineHeaderWithoutPage(t *testing.T) {
	rec := NewRecorder()

	rec.OutlineSection("Appendix", 0, func() {
		rec.OutlinePage(12, "Index")
	})

	outline := rec.Outline()
	if len(outline) != 1 {
		t.Fatalf("Outline() roots = %d, want 1", len(outline))
	}
	if outline[0].Page != 0 {
		t.Errorf("header page = %d, want 0 (non-clickable)", outline[0].Page)
	}
}

func TestRecorderOutlineSectionNilFunc(t *testing.T) {
	rec := NewRecorder()
	rec.OutlineSection("Empty", 4, nil)

	outline := rec.Outline()
	if len(outline) != 1 || outline[0].Title != "Empty" || len(outline[0].Children) != 0 {
		t.Errorf("Outline() = %+v, want single empty section", outline)
	}
}
