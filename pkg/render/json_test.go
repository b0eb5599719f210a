package render

import (
	"encoding/json"
	"testing"

	"github.com/planweave/planweave/pkg/layout"
)

func TestRenderJSON(t *testing.T) {
	rec := NewRecorder()
	rec.StartPage()
	rec.Background("dots", 2)
	rec.NamedDest("cover")
	rec.Text(layout.Box{Col: 2, Row: 2, Width: 44, Height: 4}, "Planner", TextStyle{Size: 3, Bold: true})
	rec.StartPage()
	rec.NamedDest("notes")
	rec.Link(layout.Box{Col: 2, Row: 60, Width: 6, Height: 2}, "cover")
	rec.OutlinePage(1, "Cover")

	data, err := RenderJSON(rec)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if len(out.Pages) != 2 {
		t.Fatalf("Pages count = %d, want 2", len(out.Pages))
	}
	if out.Pages[0].Number != 1 || out.Pages[1].Number != 2 {
		t.Errorf("page numbers = %d, %d, want 1, 2", out.Pages[0].Number, out.Pages[1].Number)
	}
	if len(out.Pages[0].Ops) != 3 {
		t.Errorf("page 1 ops = %d, want 3", len(out.Pages[0].Ops))
	}

	text := out.Pages[0].Ops[2]
	if text.Kind != OpText || text.Text != "Planner" || !text.Bold {
		t.Errorf("text op = %+v, want bold Planner", text)
	}
	if text.Box == nil || text.Box.Width != 44 {
		t.Errorf("text box = %+v, want width 44", text.Box)
	}

	if out.Destinations["cover"] != 1 || out.Destinations["notes"] != 2 {
		t.Errorf("Destinations = %v, want cover:1 notes:2", out.Destinations)
	}
	if len(out.Outline) != 1 || out.Outline[0].Title != "Cover" {
		t.Errorf("Outline = %+v, want single Cover entry", out.Outline)
	}
}

func TestRenderJSONWithOptions(t *testing.T) {
	rec := NewRecorder()
	rec.StartPage()

	data, err := RenderJSON(rec,
		WithJSONTitle("Planner 2026"),
		WithJSONTheme("compact"),
		WithJSONGenerator("planweave v1.0.0"),
		WithJSONGrid(48, 64),
	)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Title != "Planner 2026" {
		t.Errorf("Title = %q, want %q", out.Title, "Planner 2026")
	}
	if out.Theme != "compact" {
		t.Errorf("Theme = %q, want %q", out.Theme, "compact")
	}
	if out.Generator != "planweave v1.0.0" {
		t.Errorf("Generator = %q, want %q", out.Generator, "planweave v1.0.0")
	}
	if out.PageCols != 48 || out.PageRows != 64 {
		t.Errorf("grid = %dx%d, want 48x64", out.PageCols, out.PageRows)
	}
}

func TestRenderJSONNestedOutline(t *testing.T) {
	rec := NewRecorder()
	rec.StartPage()
	rec.OutlineSection("Quarter 1", 0, func() {
		rec.OutlinePage(2, "January")
		rec.OutlinePage(5, "February")
	})

	data, err := RenderJSON(rec)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if len(out.Outline) != 1 {
		t.Fatalf("Outline roots = %d, want 1", len(out.Outline))
	}
	section := out.Outline[0]
	if section.Page != 0 {
		t.Errorf("section page = %d, want 0 (header)", section.Page)
	}
	if len(section.Children) != 2 || section.Children[1].Title != "February" {
		t.Errorf("children = %+v, want January, February", section.Children)
	}
}

func TestRenderJSONLineOp(t *testing.T) {
	rec := NewRecorder()
	rec.StartPage()
	rec.Line(2, 10, 46, 10, LineStyle{Dashed: true})

	data, err := RenderJSON(rec)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	op := out.Pages[0].Ops[0]
	if op.Kind != OpLine {
		t.Fatalf("Kind = %q, want %q", op.Kind, OpLine)
	}
	if op.X1 != 2 || op.Y1 != 10 || op.X2 != 46 || op.Y2 != 10 {
		t.Errorf("line = (%d,%d)-(%d,%d), want (2,10)-(46,10)", op.X1, op.Y1, op.X2, op.Y2)
	}
	if !op.Dashed {
		t.Error("Dashed should be true")
	}
	if op.Box != nil {
		t.Errorf("line op Box = %+v, want nil", op.Box)
	}
}

func TestWithJSONTitleOption(t *testing.T) {
	var e jsonEncoder
	WithJSONTitle("Yearly")(&e)
	if e.title != "Yearly" {
		t.Errorf("title = %q, want %q", e.title, "Yearly")
	}
}

func TestWithJSONGridOption(t *testing.T) {
	var e jsonEncoder
	WithJSONGrid(40, 56)(&e)
	if e.cols != 40 || e.rows != 56 {
		t.Errorf("grid = %dx%d, want 40x56", e.cols, e.rows)
	}
}
