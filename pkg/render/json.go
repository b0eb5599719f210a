package render

import "encoding/json"

// JSONOption configures artifact encoding via [RenderJSON].
type JSONOption func(*jsonEncoder)

type jsonEncoder struct {
	title     string
	theme     string
	generator string
	cols      int
	rows      int
}

// WithJSONTitle records the document title in the artifact.
func WithJSONTitle(title string) JSONOption { return func(e *jsonEncoder) { e.title = title } }

// WithJSONTheme records the theme name the document was built with, for
// documentation and reproducible re-rendering.
func WithJSONTheme(name string) JSONOption { return func(e *jsonEncoder) { e.theme = name } }

// WithJSONGenerator records the producing tool and version string.
func WithJSONGenerator(g string) JSONOption { return func(e *jsonEncoder) { e.generator = g } }

// WithJSONGrid records the page grid extent so consumers can interpret the
// recorded boxes without access to the theme.
func WithJSONGrid(cols, rows int) JSONOption {
	return func(e *jsonEncoder) { e.cols = cols; e.rows = rows }
}

type jsonOutput struct {
	Generator    string         `json:"generator,omitempty"`
	Title        string         `json:"title,omitempty"`
	Theme        string         `json:"theme,omitempty"`
	PageCols     int            `json:"page_cols,omitempty"`
	PageRows     int            `json:"page_rows,omitempty"`
	Pages        []jsonPage     `json:"pages"`
	Outline      []jsonOutline  `json:"outline,omitempty"`
	Destinations map[string]int `json:"destinations,omitempty"`
}

type jsonPage struct {
	Number int      `json:"number"`
	Ops    []jsonOp `json:"ops"`
}

type jsonBox struct {
	Col    int `json:"col"`
	Row    int `json:"row"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type jsonOp struct {
	Kind    string   `json:"kind"`
	Box     *jsonBox `json:"box,omitempty"`
	X1      int      `json:"x1,omitempty"`
	Y1      int      `json:"y1,omitempty"`
	X2      int      `json:"x2,omitempty"`
	Y2      int      `json:"y2,omitempty"`
	Text    string   `json:"text,omitempty"`
	Key     string   `json:"key,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Spacing int      `json:"spacing,omitempty"`
	Size    int      `json:"size,omitempty"`
	Align   string   `json:"align,omitempty"`
	Bold    bool     `json:"bold,omitempty"`
	Muted   bool     `json:"muted,omitempty"`
	Stroke  bool     `json:"stroke,omitempty"`
	Fill    bool     `json:"fill,omitempty"`
	Rounded bool     `json:"rounded,omitempty"`
	Dashed  bool     `json:"dashed,omitempty"`
}

type jsonOutline struct {
	Title    string        `json:"title"`
	Page     int           `json:"page,omitempty"`
	Children []jsonOutline `json:"children,omitempty"`
}

// RenderJSON exports a recorded document as a pretty-printed JSON artifact.
// This is the primary interchange format for planweave, enabling:
//
//   - Golden-file assertions over exact page content
//   - External tooling over link and outline structure
//   - Re-rendering through a physical surface without a rebuild
//
// The artifact includes every recorded page operation, the destination
// index, the bookmark tree, and the render options (title, theme, grid)
// needed to reproduce the document.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify rec and is safe to call concurrently with reads.
func RenderJSON(rec *Recorder, opts ...JSONOption) ([]byte, error) {
	var e jsonEncoder
	for _, opt := range opts {
		opt(&e)
	}

	out := jsonOutput{
		Generator: e.generator,
		Title:     e.title,
		Theme:     e.theme,
		PageCols:  e.cols,
		PageRows:  e.rows,
		Pages:     buildJSONPages(rec),
		Outline:   buildJSONOutline(rec.Outline()),
	}
	if dests := rec.Destinations(); len(dests) > 0 {
		out.Destinations = dests
	}

	return json.MarshalIndent(out, "", "  ")
}

func buildJSONPages(rec *Recorder) []jsonPage {
	pages := make([]jsonPage, 0, rec.PageCount())
	for _, p := range rec.Pages() {
		jp := jsonPage{Number: p.Number, Ops: make([]jsonOp, 0, len(p.Ops))}
		for _, op := range p.Ops {
			jp.Ops = append(jp.Ops, convertJSONOp(op))
		}
		pages = append(pages, jp)
	}
	return pages
}

func convertJSONOp(op Op) jsonOp {
	jo := jsonOp{
		Kind:    op.Kind,
		Text:    op.Text,
		Key:     op.Key,
		Pattern: op.Pattern,
		Spacing: op.Spacing,
	}
	switch op.Kind {
	case OpText, OpBox, OpLink:
		jo.Box = &jsonBox{Col: op.Box.Col, Row: op.Box.Row, Width: op.Box.Width, Height: op.Box.Height}
	case OpLine:
		jo.X1, jo.Y1, jo.X2, jo.Y2 = op.X1, op.Y1, op.X2, op.Y2
	}
	jo.Size = op.TextStyle.Size
	jo.Align = string(op.TextStyle.Align)
	jo.Bold = op.TextStyle.Bold
	jo.Muted = op.TextStyle.Muted
	jo.Stroke = op.BoxStyle.Stroke
	jo.Fill = op.BoxStyle.Fill
	jo.Rounded = op.BoxStyle.Rounded
	jo.Dashed = op.LineStyle.Dashed
	return jo
}

func buildJSONOutline(entries []OutlineEntry) []jsonOutline {
	if len(entries) == 0 {
		return nil
	}
	out := make([]jsonOutline, len(entries))
	for i, e := range entries {
		out[i] = jsonOutline{
			Title:    e.Title,
			Page:     e.Page,
			Children: buildJSONOutline(e.Children),
		}
	}
	return out
}
