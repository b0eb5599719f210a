// Package config loads planner build configuration from TOML or YAML files
// and turns it into build options with a declarative plan definition.
//
// A config file names the document (title, year, theme, event sources) and
// selects sections; the package expands the selection into the page, group
// and outline declarations a hand-written definition would make.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/planweave/planweave/pkg/build"
	"github.com/planweave/planweave/pkg/calendar"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/plan"
	"github.com/planweave/planweave/pkg/theme"
)

// Config is the file-level schema shared by the TOML and YAML forms.
type Config struct {
	Title   string   `toml:"title" yaml:"title"`
	Year    int      `toml:"year" yaml:"year"`
	Theme   string   `toml:"theme" yaml:"theme"`
	Events  string   `toml:"events" yaml:"events"`
	Formats []string `toml:"formats" yaml:"formats"`
	Output  string   `toml:"output" yaml:"output"`

	Overrides Overrides      `toml:"overrides" yaml:"overrides"`
	Sections  Sections       `toml:"sections" yaml:"sections"`
	Globals   map[string]any `toml:"globals" yaml:"globals"`

	validated bool
}

// Overrides adjusts the selected theme per build. Absent fields keep the
// theme's value.
type Overrides struct {
	Pattern        *string `toml:"pattern" yaml:"pattern"`
	PatternSpacing *int    `toml:"pattern_spacing" yaml:"pattern_spacing"`
	Margin         *int    `toml:"margin" yaml:"margin"`
	HeaderRows     *int    `toml:"header_rows" yaml:"header_rows"`
	TabCols        *int    `toml:"tab_cols" yaml:"tab_cols"`
}

// Sections selects which planner sections the document contains. A zero
// Sections (nothing configured) defaults to the standard planner: annual,
// months and weeks with month tabs.
type Sections struct {
	Annual bool     `toml:"annual" yaml:"annual"`
	Months bool     `toml:"months" yaml:"months"`
	Weeks  bool     `toml:"weeks" yaml:"weeks"`
	Days   bool     `toml:"days" yaml:"days"`
	Notes  []string `toml:"notes" yaml:"notes"`
	Tabs   bool     `toml:"tabs" yaml:"tabs"`
}

func (s Sections) empty() bool {
	return !s.Annual && !s.Months && !s.Weeks && !s.Days && len(s.Notes) == 0
}

// Load reads and parses a config file, selecting the format by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "reading config %s", path)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes config data in the format named by ext (".toml", ".yaml" or
// ".yml").
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing TOML config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing YAML config")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return &cfg, nil
}

// ValidateAndSetDefaults checks the config and fills in defaults. This
// method is idempotent - calling it multiple times has the same effect as
// calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}

	if c.Year == 0 {
		c.Year = time.Now().Year()
	}
	if c.Year < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid year %d", c.Year)
	}
	if c.Title == "" {
		c.Title = fmt.Sprintf("Planner %d", c.Year)
	}
	if c.Output == "" {
		c.Output = "dist"
	}

	if c.Theme != "" {
		if err := errors.ValidateIdentifier(c.Theme); err != nil {
			return err
		}
	}
	for _, f := range c.Formats {
		if err := build.ValidateFormat(f); err != nil {
			return err
		}
	}
	if c.Events != "" && !doublestar.ValidatePattern(c.Events) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid events glob %q", c.Events)
	}
	if p := c.Overrides.Pattern; p != nil && !theme.ValidPatterns[*p] {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown background pattern %q", *p)
	}

	if c.Sections.empty() {
		c.Sections.Annual = true
		c.Sections.Months = true
		c.Sections.Weeks = true
		c.Sections.Tabs = true
	}

	c.validated = true
	return nil
}

// BuildOptions assembles the build options this config describes. The
// caller supplies the collaborators the file cannot: page source, theme
// registry, surface and logger.
func (c *Config) BuildOptions() (build.Options, error) {
	if err := c.ValidateAndSetDefaults(); err != nil {
		return build.Options{}, err
	}
	return build.Options{
		Title:          c.Title,
		Year:           c.Year,
		Theme:          c.Theme,
		ThemeOverrides: c.themeOverrides(),
		EventsGlob:     c.Events,
		Formats:        c.Formats,
		Globals:        globalParams(c.Globals),
		Define:         c.define,
	}, nil
}

func (c *Config) themeOverrides() theme.Overrides {
	return theme.Overrides{
		Pattern:        c.Overrides.Pattern,
		PatternSpacing: c.Overrides.PatternSpacing,
		Margin:         c.Overrides.Margin,
		HeaderRows:     c.Overrides.HeaderRows,
		TabCols:        c.Overrides.TabCols,
	}
}

// define expands the configured sections into declarations. Month tabs ride
// along on the annual, monthly and weekly pages when enabled.
func (c *Config) define(b *plan.Builder) error {
	var tabs []plan.PageOption
	if c.Sections.Tabs && c.Sections.Months {
		tabs = []plan.PageOption{plan.WithParam("tabs", "months")}
	}

	if c.Sections.Annual {
		b.Page("annual", append(tabs, plan.WithOutline())...)
	}

	if c.Sections.Months {
		b.Group("months", plan.GroupOptions{Cycle: true, OutlineTitle: "Months"}, func() {
			for _, m := range calendar.Months(c.Year) {
				b.Page("monthly", append(tabs, plan.WithParam("month", m), plan.WithOutline())...)
			}
		})
	}

	if c.Sections.Weeks {
		b.OutlineSection("Weeks", plan.SectionOptions{DestFirst: true}, func() {
			for _, w := range calendar.Weeks(c.Year) {
				b.Page("weekly", append(tabs, plan.WithParam("week", w), plan.WithOutline())...)
			}
		})
	}

	if c.Sections.Days {
		start := time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		for d := start; d.Year() == c.Year; d = d.AddDate(0, 0, 1) {
			b.Page("daily", plan.WithParam("date", d.Format(time.DateOnly)))
		}
	}

	for _, title := range c.Sections.Notes {
		b.Page("notes", plan.WithParam("title", title), plan.WithOutlineTitle(title))
	}
	return nil
}

// globalParams converts the config's free-form globals into params. TOML
// integers arrive as int64 and are narrowed so they compare as ints.
func globalParams(globals map[string]any) plan.Params {
	if len(globals) == 0 {
		return nil
	}
	params := make(plan.Params, len(globals))
	for k, v := range globals {
		if n, ok := v.(int64); ok {
			v = int(n)
		}
		params[k] = plan.Val(v)
	}
	return params
}
