package layout

import (
	"testing"

	"github.com/planweave/planweave/pkg/errors"
)

func widths(t *testing.T, n *Node) []int {
	t.Helper()
	out := make([]int, len(n.Children))
	for i, c := range n.Children {
		b, ok := c.Bounds()
		if !ok {
			t.Fatalf("child %d has no bounds", i)
		}
		out[i] = b.Width
	}
	return out
}

func TestColumnsEqual(t *testing.T) {
	tests := []struct {
		name  string
		count int
		avail int
		want  []int
	}{
		{"exact division", 7, 35, []int{5, 5, 5, 5, 5, 5, 5}},
		{"remainder on last", 7, 37, []int{5, 5, 5, 5, 5, 5, 7}},
		{"single column", 1, 33, []int{33}},
		{"more columns than units", 5, 3, []int{0, 0, 0, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := Columns(WithCount(tt.count))
			if err != nil {
				t.Fatalf("Columns() error = %v", err)
			}
			cols.ComputeBounds(0, 0, tt.avail, 10)

			got := widths(t, cols)
			if len(got) != len(tt.want) {
				t.Fatalf("generated %d children, want %d", len(got), len(tt.want))
			}
			total := 0
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("column %d width = %d, want %d", i, got[i], tt.want[i])
				}
				total += got[i]
			}
			if total != tt.avail {
				t.Errorf("total width = %d, want %d", total, tt.avail)
			}
		})
	}
}

func TestColumnsWithGap(t *testing.T) {
	cols, err := Columns(WithCount(3), WithGap(1))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	cols.ComputeBounds(0, 0, 35, 10)

	got := widths(t, cols)
	want := []int{11, 11, 11}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d width = %d, want %d", i, got[i], want[i])
		}
	}

	wantCols := []int{0, 12, 24}
	for i, c := range cols.Children {
		b, _ := c.Bounds()
		if b.Col != wantCols[i] {
			t.Errorf("column %d Col = %d, want %d", i, b.Col, wantCols[i])
		}
		if b.Height != 10 {
			t.Errorf("column %d Height = %d, want 10", i, b.Height)
		}
	}
}

func TestColumnsExplicitSizes(t *testing.T) {
	cols, err := Columns(WithSizes(8, 3, 12))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	cols.ComputeBounds(0, 0, 40, 10)

	got := widths(t, cols)
	want := []int{8, 3, 12}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d width = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestColumnsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []GenOption
	}{
		{"neither count nor sizes", nil},
		{"both count and sizes", []GenOption{WithCount(3), WithSizes(5, 5)}},
		{"zero count", []GenOption{WithCount(0)}},
		{"negative count", []GenOption{WithCount(-2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Columns(tt.opts...)
			if err == nil {
				t.Fatal("Columns() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestColumnsRegenerationIdempotent(t *testing.T) {
	cols, err := Columns(WithCount(4))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}

	cols.ComputeBounds(0, 0, 21, 10)
	first := widths(t, cols)

	cols.ComputeBounds(0, 0, 21, 10)
	second := widths(t, cols)

	if len(second) != 4 {
		t.Fatalf("after recompute generated %d children, want 4 (no accumulation)", len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("column %d width changed: %d then %d", i, first[i], second[i])
		}
	}
}

func TestRowsEqual(t *testing.T) {
	rows, err := Rows(WithCount(3), WithGap(1))
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	rows.ComputeBounds(0, 0, 20, 32)

	// inner = 32 - 2 = 30; each row 10.
	wantRows := []int{0, 11, 22}
	for i, c := range rows.Children {
		b, _ := c.Bounds()
		if b.Height != 10 {
			t.Errorf("row %d Height = %d, want 10", i, b.Height)
		}
		if b.Row != wantRows[i] {
			t.Errorf("row %d Row = %d, want %d", i, b.Row, wantRows[i])
		}
		if b.Width != 20 {
			t.Errorf("row %d Width = %d, want 20", i, b.Width)
		}
	}
}

func TestGridTiling(t *testing.T) {
	grid, err := Grid(7, 5)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	grid.ComputeBounds(0, 0, 37, 26)

	if len(grid.Children) != 35 {
		t.Fatalf("generated %d cells, want 35", len(grid.Children))
	}

	// Every row of cells spans the full width; adjacent cells touch.
	for r := 0; r < 5; r++ {
		rowTotal := 0
		for c := 0; c < 7; c++ {
			cell := grid.Cell(r, c)
			if cell == nil {
				t.Fatalf("Cell(%d,%d) = nil", r, c)
			}
			b, _ := cell.Bounds()
			rowTotal += b.Width
			if c > 0 {
				prev, _ := grid.Cell(r, c-1).Bounds()
				if prev.Right() != b.Col {
					t.Errorf("cell (%d,%d) starts at %d, want %d", r, c, b.Col, prev.Right())
				}
			}
		}
		if rowTotal != 37 {
			t.Errorf("row %d total width = %d, want 37", r, rowTotal)
		}
	}

	// Every column of cells spans the full height.
	for c := 0; c < 7; c++ {
		colTotal := 0
		for r := 0; r < 5; r++ {
			b, _ := grid.Cell(r, c).Bounds()
			colTotal += b.Height
			if r > 0 {
				prev, _ := grid.Cell(r-1, c).Bounds()
				if prev.Bottom() != b.Row {
					t.Errorf("cell (%d,%d) starts at row %d, want %d", r, c, b.Row, prev.Bottom())
				}
			}
		}
		if colTotal != 26 {
			t.Errorf("column %d total height = %d, want 26", c, colTotal)
		}
	}
}

func TestGridWithGaps(t *testing.T) {
	grid, err := Grid(3, 2, WithGap(1))
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	grid.ComputeBounds(0, 0, 10, 7)

	// cellW = (10-2)/3 = 2, last col = 10 - 2*(2+1) = 4.
	// cellH = (7-1)/2 = 3, last row = 7 - (3+1) = 3.
	wantW := []int{2, 2, 4}
	wantH := []int{3, 3}
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			b, _ := grid.Cell(r, c).Bounds()
			if b.Width != wantW[c] {
				t.Errorf("cell (%d,%d) Width = %d, want %d", r, c, b.Width, wantW[c])
			}
			if b.Height != wantH[r] {
				t.Errorf("cell (%d,%d) Height = %d, want %d", r, c, b.Height, wantH[r])
			}
		}
	}

	last, _ := grid.Cell(1, 2).Bounds()
	if last.Right() != 10 || last.Bottom() != 7 {
		t.Errorf("last cell = %v, want right edge 10 and bottom edge 7", last)
	}
}

func TestGridSeparateAxisGaps(t *testing.T) {
	grid, err := Grid(2, 2, WithColGap(2), WithRowGap(0))
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	grid.ComputeBounds(0, 0, 10, 10)

	b01, _ := grid.Cell(0, 1).Bounds()
	if b01.Col != 6 {
		t.Errorf("second column Col = %d, want 6", b01.Col)
	}
	b10, _ := grid.Cell(1, 0).Bounds()
	if b10.Row != 5 {
		t.Errorf("second row Row = %d, want 5", b10.Row)
	}
}

func TestGridCellAddressing(t *testing.T) {
	grid, err := Grid(7, 5)
	if err != nil {
		t.Fatalf("Grid() error = %v", err)
	}
	grid.ComputeBounds(0, 0, 35, 25)

	if got := grid.Cell(0, 0).Name; got != "cell-1-1" {
		t.Errorf("Cell(0,0).Name = %q, want %q", got, "cell-1-1")
	}
	if got := grid.Cell(4, 6).Name; got != "cell-5-7" {
		t.Errorf("Cell(4,6).Name = %q, want %q", got, "cell-5-7")
	}

	for _, bad := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 7}} {
		if grid.Cell(bad[0], bad[1]) != nil {
			t.Errorf("Cell(%d,%d) != nil, want nil", bad[0], bad[1])
		}
	}

	plain := &Node{}
	plain.ComputeBounds(0, 0, 10, 10)
	if plain.Cell(0, 0) != nil {
		t.Error("Cell() on non-grid node != nil, want nil")
	}
}

func TestGridValidation(t *testing.T) {
	tests := []struct {
		name string
		cols int
		rows int
		opts []GenOption
	}{
		{"zero cols", 0, 5, nil},
		{"zero rows", 7, 0, nil},
		{"negative cols", -1, 5, nil},
		{"count option rejected", 7, 5, []GenOption{WithCount(3)}},
		{"sizes option rejected", 7, 5, []GenOption{WithSizes(5, 5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Grid(tt.cols, tt.rows, tt.opts...)
			if err == nil {
				t.Fatal("Grid() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidLayout)
			}
		})
	}
}

func TestGeneratorInsideContainer(t *testing.T) {
	cols, err := Columns(WithCount(7))
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	cols.Flex = 1

	root := &Node{
		Direction: DirectionVertical,
		Children: []*Node{
			{Height: Fixed(4)},
			cols,
		},
	}
	root.ComputeBounds(0, 0, 35, 30)

	b, _ := cols.Bounds()
	if b.Row != 4 || b.Height != 26 {
		t.Errorf("columns box = %v, want row 4 height 26", b)
	}
	got := widths(t, cols)
	for i, w := range got {
		if w != 5 {
			t.Errorf("column %d width = %d, want 5", i, w)
		}
	}
}
