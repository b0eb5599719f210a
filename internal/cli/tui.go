package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pageSummary is one row of the preview list: a rendered page and the
// structural counts derived from its recorded operations.
type pageSummary struct {
	Number int
	Type   string
	Key    string
	Title  string
	Ops    int
	Links  int
}

// summarizePages joins the recorded pages with the registry's destination
// index into the preview's row data.
func summarizePages(rec *render.Recorder, reg *links.Registry) []pageSummary {
	byNumber := make(map[int]links.DestinationInfo)
	for _, info := range reg.Pages() {
		byNumber[info.PageNumber] = info
	}

	summaries := make([]pageSummary, 0, rec.PageCount())
	for _, p := range rec.Pages() {
		s := pageSummary{Number: p.Number, Ops: len(p.Ops)}
		if info, ok := byNumber[p.Number]; ok {
			s.Type = info.PageType
			s.Key = info.Key
			s.Title = plan.TitleFromKey(info.Key)
		}
		for _, op := range p.Ops {
			if op.Kind == render.OpLink {
				s.Links++
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// =============================================================================
// PreviewModel - Interactive page browser over a built document
// =============================================================================

// PreviewModel is the bubbletea model for browsing a built document's pages.
// The list view shows one row per page; enter opens a detail view of the
// selected page's recorded operations and outgoing links.
type PreviewModel struct {
	Title    string
	Pages    []pageSummary
	Ops      [][]render.Op  // Recorded operations, parallel to Pages
	Dests    map[string]int // Destination key to page number
	Cursor   int
	Offset   int
	Height   int
	Detail   bool
}

// NewPreviewModel creates a preview model over a recorded build.
func NewPreviewModel(title string, rec *render.Recorder, reg *links.Registry) PreviewModel {
	ops := make([][]render.Op, 0, rec.PageCount())
	for _, p := range rec.Pages() {
		ops = append(ops, p.Ops)
	}
	return PreviewModel{
		Title:  title,
		Pages:  summarizePages(rec, reg),
		Ops:    ops,
		Dests:  rec.Destinations(),
		Height: 15,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pages)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Pages) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m PreviewModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Pages) {
		end = len(m.Pages)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Pages[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			strconv.Itoa(p.Number),
			p.Type,
			p.Title,
			strconv.Itoa(p.Ops),
			strconv.Itoa(p.Links),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Page", "Type", "Title", "Ops", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 || col == 4 || col == 5 {
				return StyleNumber
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Pages))))

	return b.String()
}

func (m PreviewModel) detailView() string {
	p := m.Pages[m.Cursor]
	ops := m.Ops[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Page %d · %s", p.Number, p.Title)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render("  key    ") + StyleLink.Render(p.Key) + "\n")
	b.WriteString(StyleDim.Render("  type   ") + StyleValue.Render(p.Type) + "\n\n")

	counts := map[string]int{}
	for _, op := range ops {
		counts[op.Kind]++
	}
	for _, kind := range []string{render.OpBackground, render.OpText, render.OpBox, render.OpLine, render.OpDest, render.OpLink} {
		if counts[kind] == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%4d", counts[kind])),
			StyleDim.Render(kind)))
	}

	targets := linkTargets(ops, m.Dests)
	if len(targets) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  links to") + "\n")
		for _, tgt := range targets {
			b.WriteString("    " + StyleLink.Render(tgt) + "\n")
		}
	}

	return b.String()
}

// linkTargets lists the page's outgoing links as "key (page N)" lines, in
// first-occurrence order with duplicates collapsed.
func linkTargets(ops []render.Op, dests map[string]int) []string {
	var targets []string
	seen := map[string]bool{}
	for _, op := range ops {
		if op.Kind != render.OpLink || seen[op.Key] {
			continue
		}
		seen[op.Key] = true
		if page, ok := dests[op.Key]; ok {
			targets = append(targets, fmt.Sprintf("%s (page %d)", op.Key, page))
		} else {
			targets = append(targets, op.Key)
		}
	}
	return targets
}
