package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunLinksDOT(t *testing.T) {
	dir := t.TempDir()
	planPath := writePlan(t, dir, "plan.toml", `
title = "Link Graph"
year = 2026

[sections]
months = true
`)
	outPath := filepath.Join(dir, "links.dot")

	c := testCLI()
	if err := c.runLinks(planPath, linksFlags{format: "dot", output: outPath}); err != nil {
		t.Fatalf("runLinks() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading DOT output: %v", err)
	}
	dot := string(data)

	if !strings.HasPrefix(dot, "digraph plan {") {
		t.Errorf("DOT output does not start with digraph header:\n%s", dot[:min(len(dot), 80)])
	}
	if !strings.Contains(dot, `"cluster_months"`) {
		t.Error("DOT output missing the months group cluster")
	}
	// Calendar successor edges chain the months; the cycle wrap is dashed
	// and non-constraining.
	if !strings.Contains(dot, `"monthly:month=1" -> "monthly:month=2"`) {
		t.Error("DOT output missing the January to February edge")
	}
	if !strings.Contains(dot, `"monthly:month=12" -> "monthly:month=1" [style=dashed, constraint=false];`) {
		t.Error("DOT output missing the cycle wrap edge")
	}
}

func TestRunLinksBadPlan(t *testing.T) {
	c := testCLI()
	err := c.runLinks(filepath.Join(t.TempDir(), "nope.toml"), linksFlags{format: "dot"})
	if err == nil {
		t.Fatal("runLinks() succeeded on a missing plan file")
	}
}

func TestValidateLinkFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"png", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			err := validateLinkFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLinkFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}
}
