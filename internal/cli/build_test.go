package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/planweave/planweave/pkg/errors"
)

// writePlan writes a plan file into dir and returns its path.
func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func TestRunBuildWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	planPath := writePlan(t, dir, "plan.toml", `
title = "Test Planner"
year = 2026

[sections]
annual = true
notes = ["Scratch"]
`)
	outDir := filepath.Join(dir, "out")

	c := testCLI()
	flags := buildFlags{output: outDir, noCache: true}
	if err := c.runBuild(context.Background(), planPath, flags); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "plan.json"))
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}

	var artifact struct {
		Title string `json:"title"`
		Pages []struct {
			Number int `json:"number"`
		} `json:"pages"`
		Destinations map[string]int `json:"destinations"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		t.Fatalf("artifact is not valid JSON: %v", err)
	}

	if artifact.Title != "Test Planner" {
		t.Errorf("artifact title = %q, want %q", artifact.Title, "Test Planner")
	}
	if len(artifact.Pages) != 2 {
		t.Errorf("artifact has %d pages, want 2 (annual + notes)", len(artifact.Pages))
	}
	if artifact.Destinations["annual"] != 1 {
		t.Errorf("annual destination on page %d, want 1", artifact.Destinations["annual"])
	}
}

func TestRunBuildMissingPlan(t *testing.T) {
	c := testCLI()
	err := c.runBuild(context.Background(), filepath.Join(t.TempDir(), "nope.toml"), buildFlags{noCache: true})
	if err == nil {
		t.Fatal("runBuild() succeeded on a missing plan file")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", got, errors.ErrCodeFileNotFound)
	}
}

func TestLoadPlanFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	planPath := writePlan(t, dir, "plan.toml", `
title = "Overridable"
year = 2026
theme = "default"
output = "dist"
`)

	cfg, err := loadPlan(planPath, buildFlags{
		theme:   "compact",
		year:    2027,
		output:  "alt",
		formats: []string{"json"},
	})
	if err != nil {
		t.Fatalf("loadPlan() error = %v", err)
	}

	if cfg.Theme != "compact" {
		t.Errorf("Theme = %q, want flag override %q", cfg.Theme, "compact")
	}
	if cfg.Year != 2027 {
		t.Errorf("Year = %d, want flag override 2027", cfg.Year)
	}
	if cfg.Output != "alt" {
		t.Errorf("Output = %q, want flag override %q", cfg.Output, "alt")
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "json" {
		t.Errorf("Formats = %v, want [json]", cfg.Formats)
	}
}

func TestLoadPlanKeepsFileValues(t *testing.T) {
	dir := t.TempDir()
	planPath := writePlan(t, dir, "plan.toml", `
title = "Untouched"
year = 2026
theme = "default"
`)

	cfg, err := loadPlan(planPath, buildFlags{})
	if err != nil {
		t.Fatalf("loadPlan() error = %v", err)
	}
	if cfg.Year != 2026 || cfg.Theme != "default" {
		t.Errorf("loadPlan() with zero flags changed file values: year %d theme %q", cfg.Year, cfg.Theme)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"json": []byte(`{"pages":[]}`)}

	paths, err := writeArtifacts(artifacts, []string{"json"}, dir, "plans/weekplan.yaml")
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}

	want := filepath.Join(dir, "weekplan.json")
	if len(paths) != 1 || paths[0] != want {
		t.Fatalf("writeArtifacts() paths = %v, want [%s]", paths, want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("reading written artifact: %v", err)
	}
	if string(data) != `{"pages":[]}` {
		t.Errorf("artifact content = %q", data)
	}
}
