package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planweave/planweave/pkg/config"
	"github.com/planweave/planweave/pkg/pages"
	"github.com/planweave/planweave/pkg/render"
)

// previewCommand creates the preview command for browsing a built document
// in the terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [plan file]",
		Short: "Build a plan and browse its pages in the terminal",
		Long: `Build a plan and browse its pages in the terminal.

The preview command builds the document in memory and opens an interactive
page list: one row per rendered page with its type, title and operation
counts. Selecting a page shows its recorded operations and where its links
lead.

Nothing is written to disk; use 'build' to produce artifacts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), planArg(args), noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPreview builds the plan onto an in-memory recorder and opens the page
// browser over the result.
func (c *CLI) runPreview(ctx context.Context, planPath string, noCache bool) error {
	cfg, err := config.Load(planPath)
	if err != nil {
		return err
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return err
	}
	opts.Pages = pages.Default()
	opts.Logger = c.Logger

	// The preview needs the recorded operations, so the build renders onto
	// its own recorder instead of taking the artifact cache path.
	rec := render.NewRecorder()
	opts.Surface = rec

	runner := c.newRunner(noCache)
	defer runner.Cache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building %s...", cfg.Title))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	m := NewPreviewModel(cfg.Title, rec, result.Registry)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
