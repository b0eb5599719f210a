package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planweave/planweave/internal/watch"
	"github.com/planweave/planweave/pkg/config"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/pages"
)

// buildFlags holds the command-line flags for the build command.
type buildFlags struct {
	output  string
	theme   string
	year    int
	formats []string
	noCache bool
	refresh bool
	watch   bool
}

// buildCommand creates the build command for generating planner documents.
func (c *CLI) buildCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build [plan file]",
		Short: "Build a planner document from a plan file",
		Long: `Build a planner document from a plan file.

The build command reads a plan file (TOML or YAML), declares its pages,
resolves cross-page links and bookmarks, renders every page, and writes the
encoded artifacts to the output directory. Without an argument it looks for
plan.toml in the current directory.

Unchanged plans are served from the local cache; use --refresh to force a
full rebuild or --no-cache to disable caching entirely.

With --watch the command stays running and rebuilds whenever the plan file
or any matched event file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planPath := planArg(args)
			if flags.watch {
				return c.runBuildWatch(cmd.Context(), planPath, flags)
			}
			return c.runBuild(cmd.Context(), planPath, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory (default: plan file's output setting, then dist)")
	cmd.Flags().StringVarP(&flags.theme, "theme", "t", "", "theme name, overriding the plan file")
	cmd.Flags().IntVar(&flags.year, "year", 0, "planner year, overriding the plan file")
	cmd.Flags().StringSliceVarP(&flags.formats, "format", "f", nil, "artifact format(s): json")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached products and rebuild")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild when the plan or event files change")

	return cmd
}

// runBuild executes one build of the plan file and writes its artifacts.
func (c *CLI) runBuild(ctx context.Context, planPath string, flags buildFlags) error {
	cfg, err := loadPlan(planPath, flags)
	if err != nil {
		return err
	}

	opts, err := cfg.BuildOptions()
	if err != nil {
		return err
	}
	opts.Pages = pages.Default()
	opts.Refresh = flags.refresh
	opts.Logger = c.Logger
	// Validate here rather than inside Execute so the defaults (notably the
	// format list) are visible when writing artifacts below.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := c.newRunner(flags.noCache)
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

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, cfg.Output, planPath)
	if err != nil {
		return err
	}

	printSuccess("Built %s", StyleHighlight.Render(cfg.Title))
	for _, p := range paths {
		printFile(p)
	}
	if cfg.Events != "" && result.Stats.EventCount == 0 {
		printWarning("No events matched %s", cfg.Events)
	}
	printStats(result.Stats.PageCount, result.Stats.EventCount, result.CacheInfo.ArtifactHit)
	printNewline()
	printNextStep("Preview", appName+" preview "+planPath)

	return nil
}

// runBuildWatch builds once, then keeps rebuilding as the plan file or its
// event files change. A failed rebuild is reported and watching continues,
// so one bad save doesn't end the session.
func (c *CLI) runBuildWatch(ctx context.Context, planPath string, flags buildFlags) error {
	rebuild := func() {
		if err := c.runBuild(ctx, planPath, flags); err != nil {
			printError("Build failed: %s", errors.UserMessage(err))
		}
	}
	rebuild()

	wopts := watch.Options{
		Paths:  []string{planPath},
		Logger: c.Logger,
	}
	// The event glob is re-read per change so edits to it take effect on
	// the next save of the plan file; the initial watch set covers the
	// glob as loaded now.
	if cfg, err := loadPlan(planPath, flags); err == nil && cfg.Events != "" {
		wopts.Globs = []string{cfg.Events}
	}

	w, err := watch.New(wopts, func(paths []string) {
		printNewline()
		rebuild()
	})
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

// loadPlan loads the plan file and applies flag overrides on top of it.
func loadPlan(planPath string, flags buildFlags) (*config.Config, error) {
	cfg, err := config.Load(planPath)
	if err != nil {
		return nil, err
	}
	if flags.theme != "" {
		cfg.Theme = flags.theme
	}
	if flags.year != 0 {
		cfg.Year = flags.year
	}
	if len(flags.formats) > 0 {
		cfg.Formats = flags.formats
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	return cfg, nil
}

// writeArtifacts writes every encoded artifact into the output directory,
// named after the plan file. Returns the written paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, dir, planPath string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}

	base := strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, base+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write artifact %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
