package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/pkg/config"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/inspect"
)

// linksFlags holds the command-line flags for the links command.
type linksFlags struct {
	format   string
	output   string
	detailed bool
}

// linksCommand creates the links command for inspecting the cross-page link
// graph of a plan.
func (c *CLI) linksCommand() *cobra.Command {
	var flags linksFlags

	cmd := &cobra.Command{
		Use:   "links [plan file]",
		Short: "Export the cross-page link graph of a plan",
		Long: `Export the cross-page link graph of a plan.

The links command runs the declare pass only - nothing is rendered - and
emits the plan's link structure: one node per page, next-week and next-month
edges, and group clusters with their cycle wrap edges.

Output is Graphviz DOT by default; -f svg renders the graph in-process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateLinkFormat(flags.format); err != nil {
				return err
			}
			return c.runLinks(planArg(args), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "include keys, page numbers and params in node labels")

	return cmd
}

// runLinks collects the plan's link graph and writes it in the requested
// format.
func (c *CLI) runLinks(planPath string, flags linksFlags) error {
	cfg, err := config.Load(planPath)
	if err != nil {
		return err
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	g, err := inspect.Collect(opts.Define)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Collected %d pages, %d links, %d groups",
		len(g.Nodes), len(g.Edges), len(g.Clusters)))

	dot := inspect.ToDOT(g, inspect.Options{Detailed: flags.detailed})

	data := []byte(dot)
	if flags.format == "svg" {
		data, err = inspect.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
	}

	out, err := openOutput(flags.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}

	if flags.output != "" {
		printSuccess("Exported link graph")
		printFile(flags.output)
		printDetail("%d pages, %d links, %d groups", len(g.Nodes), len(g.Edges), len(g.Clusters))
	}
	return nil
}

func validateLinkFormat(format string) error {
	switch format {
	case "dot", "svg":
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be one of: dot, svg)", format)
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
