package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/planweave/planweave/pkg/calendar"
	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/plan"
)

const tomlConfig = `
title = "Field Planner"
year = 2026
theme = "compact"
events = "events/*.yaml"
formats = ["json"]
output = "out"

[overrides]
pattern = "grid"
margin = 1

[sections]
annual = true
months = true
weeks = false
notes = ["Projects"]
tabs = true

[globals]
dense = true
`

const yamlConfig = `
title: Field Planner
year: 2026
theme: compact
events: "events/*.yaml"
formats: [json]
output: out
overrides:
  pattern: grid
  margin: 1
sections:
  annual: true
  months: true
  weeks: false
  notes: [Projects]
  tabs: true
globals:
  dense: true
`

func assertParsed(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg.Title != "Field Planner" || cfg.Year != 2026 || cfg.Theme != "compact" {
		t.Errorf("header = (%q, %d, %q), want Field Planner 2026 compact", cfg.Title, cfg.Year, cfg.Theme)
	}
	if cfg.Events != "events/*.yaml" || cfg.Output != "out" {
		t.Errorf("events/output = (%q, %q)", cfg.Events, cfg.Output)
	}
	if cfg.Overrides.Pattern == nil || *cfg.Overrides.Pattern != "grid" {
		t.Errorf("pattern override = %v, want grid", cfg.Overrides.Pattern)
	}
	if cfg.Overrides.Margin == nil || *cfg.Overrides.Margin != 1 {
		t.Errorf("margin override = %v, want 1", cfg.Overrides.Margin)
	}
	if cfg.Overrides.TabCols != nil {
		t.Errorf("tab_cols override = %v, want absent", cfg.Overrides.TabCols)
	}
	if !cfg.Sections.Annual || !cfg.Sections.Months || cfg.Sections.Weeks {
		t.Errorf("sections = %+v, want annual+months without weeks", cfg.Sections)
	}
	if len(cfg.Sections.Notes) != 1 || cfg.Sections.Notes[0] != "Projects" {
		t.Errorf("notes = %v, want [Projects]", cfg.Sections.Notes)
	}
	if v, ok := cfg.Globals["dense"].(bool); !ok || !v {
		t.Errorf("globals = %v, want dense=true", cfg.Globals)
	}
}

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte(tomlConfig), ".toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertParsed(t, cfg)
}

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(yamlConfig), ".yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	assertParsed(t, cfg)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), ".json")
	if err == nil {
		t.Fatal("Parse() succeeded, want unsupported format error")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %v, want %v", got, errors.ErrCodeInvalidFormat)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("title = \n"), ".toml"); err == nil {
		t.Error("Parse() accepted malformed TOML")
	}
	if _, err := Parse([]byte("{broken"), ".yaml"); err == nil {
		t.Error("Parse() accepted malformed YAML")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.toml")
	if err := os.WriteFile(path, []byte(tomlConfig), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertParsed(t, cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load() succeeded, want missing file error")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", got, errors.ErrCodeFileNotFound)
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	year := time.Now().Year()
	if cfg.Year != year {
		t.Errorf("Year = %d, want %d", cfg.Year, year)
	}
	if want := fmt.Sprintf("Planner %d", year); cfg.Title != want {
		t.Errorf("Title = %q, want %q", cfg.Title, want)
	}
	if cfg.Output != "dist" {
		t.Errorf("Output = %q, want dist", cfg.Output)
	}
	// An unconfigured section block becomes the standard planner.
	if !cfg.Sections.Annual || !cfg.Sections.Months || !cfg.Sections.Weeks || !cfg.Sections.Tabs {
		t.Errorf("Sections = %+v, want standard planner defaults", cfg.Sections)
	}
	if cfg.Sections.Days {
		t.Error("Days defaulted on, want off")
	}
}

func TestValidateErrors(t *testing.T) {
	strp := func(s string) *string { return &s }

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative year", cfg: Config{Year: -1}},
		{name: "traversal in theme name", cfg: Config{Theme: "../evil"}},
		{name: "bad format", cfg: Config{Formats: []string{"docx"}}},
		{name: "bad events glob", cfg: Config{Events: "["}},
		{name: "unknown pattern", cfg: Config{Overrides: Overrides{Pattern: strp("plaid")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() succeeded, want error")
			}
		})
	}
}

func TestDefineExpandsSections(t *testing.T) {
	cfg := &Config{
		Year: 2026,
		Sections: Sections{
			Annual: true,
			Months: true,
			Weeks:  true,
			Notes:  []string{"Projects", "Reading"},
			Tabs:   true,
		},
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	b := plan.NewBuilder()
	if err := cfg.define(b); err != nil {
		t.Fatalf("define() error = %v", err)
	}
	if err := b.Err(); err != nil {
		t.Fatalf("builder error = %v", err)
	}

	weeks := len(calendar.Weeks(2026))
	wantPages := 1 + 12 + weeks + 2
	if got := len(b.Pages()); got != wantPages {
		t.Errorf("declared %d pages, want %d", got, wantPages)
	}

	groups := b.Groups()
	if len(groups) != 1 || groups[0].Name != "months" || !groups[0].Cycle {
		t.Fatalf("groups = %+v, want one cycling months group", groups)
	}
	if len(groups[0].Pages) != 12 {
		t.Errorf("months group has %d pages, want 12", len(groups[0].Pages))
	}

	// Annual entry, Months section, Weeks section, then the two notes.
	outline := b.Outline()
	if len(outline) != 5 {
		t.Fatalf("outline has %d roots, want 5", len(outline))
	}
	if outline[1].Title != "Months" || len(outline[1].Children) != 12 {
		t.Errorf("outline[1] = %q with %d children, want Months with 12", outline[1].Title, len(outline[1].Children))
	}
	if outline[2].Title != "Weeks" || len(outline[2].Children) != weeks {
		t.Errorf("outline[2] = %q with %d children, want Weeks with %d", outline[2].Title, len(outline[2].Children), weeks)
	}
	if outline[2].Dest == "" {
		t.Error("Weeks section dest not resolved to its first child")
	}

	if _, ok := b.Pages()[0].Params["tabs"]; !ok {
		t.Error("annual page missing the tabs param")
	}
}

func TestDefineDays(t *testing.T) {
	cfg := &Config{Year: 2026, Sections: Sections{Days: true}}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	b := plan.NewBuilder()
	if err := cfg.define(b); err != nil {
		t.Fatalf("define() error = %v", err)
	}

	pages := b.Pages()
	if len(pages) != 365 {
		t.Fatalf("declared %d daily pages, want 365", len(pages))
	}
	if got := plan.ValueString(pages[0].Params["date"]); got != "2026-01-01" {
		t.Errorf("first daily date = %q, want 2026-01-01", got)
	}
	if got := plan.ValueString(pages[364].Params["date"]); got != "2026-12-31" {
		t.Errorf("last daily date = %q, want 2026-12-31", got)
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := &Config{
		Title:   "Field Planner",
		Year:    2026,
		Events:  "events/*.yaml",
		Formats: []string{"json"},
		Globals: map[string]any{"dense": true, "level": int64(3)},
	}

	opts, err := cfg.BuildOptions()
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}

	if opts.Title != "Field Planner" || opts.Year != 2026 {
		t.Errorf("options = (%q, %d), want config values", opts.Title, opts.Year)
	}
	if opts.EventsGlob != "events/*.yaml" {
		t.Errorf("EventsGlob = %q", opts.EventsGlob)
	}
	if opts.Define == nil {
		t.Fatal("Define is nil")
	}

	// TOML integers land as int64 and must narrow to int for link matching.
	n, ok := plan.NumberOf(opts.Globals["level"])
	if !ok || n != 3 {
		t.Errorf("globals level = (%d, %v), want numeric 3", n, ok)
	}
	if got := plan.ValueString(opts.Globals["dense"]); got != "true" {
		t.Errorf("globals dense = %q, want true", got)
	}
}
