// Package cli implements the planweave command-line interface.
//
// The CLI loads a plan file (TOML or YAML), builds the planner document
// through the build pipeline, and writes the encoded artifacts. Supporting
// commands list page types, inspect the cross-page link graph, preview a
// built document in the terminal, and manage the artifact cache. All
// commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/buildinfo"
	"github.com/planweave/planweave/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "planweave"

// defaultPlanFile is used when a command is run without a plan argument.
const defaultPlanFile = "plan.toml"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Planweave generates printable planner documents from plan files",
		Long:         `Planweave builds multi-page planner documents - annual overviews, month calendars, weekly spreads - from a declarative plan file, resolving cross-page links and bookmarks along the way.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a build runner for CLI use.
func (c *CLI) newRunner(noCache bool) *build.Runner {
	return build.NewRunner(newCache(noCache), nil, c.Logger)
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/planweave/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// planArg returns the plan path from args, falling back to the default.
func planArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return defaultPlanFile
}
