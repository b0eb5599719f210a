package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planweave/planweave/pkg/pages"
)

// pagesCommand creates the pages command listing the available page types.
func (c *CLI) pagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the available page types",
		Long: `List the page types a plan file can declare.

Each row names a page type and what its builder draws. Plans reference these
types in their sections; unknown types abort the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(pageTypeTable(pages.Default()))
			return nil
		},
	}
}

// pageTypeTable renders the registered page types as a bordered table.
func pageTypeTable(reg *pages.Registry) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	typeStyle := lipgloss.NewStyle().Foreground(colorCyan)

	rows := [][]string{}
	for _, pageType := range reg.Types() {
		desc := reg.Describe(pageType)
		if desc == "" {
			desc = "—"
		}
		rows = append(rows, []string{pageType, desc})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return typeStyle
			}
			return StyleValue
		})

	return t.Render()
}
