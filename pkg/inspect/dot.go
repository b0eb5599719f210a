package inspect

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planweave/planweave/pkg/plan"
)

// Options configures link-graph rendering.
type Options struct {
	// Detailed includes destination keys, page numbers and params in node
	// labels. When false, labels are short titles derived from the key.
	Detailed bool
}

// ToDOT converts a link graph to Graphviz DOT format. The resulting DOT
// string can be rendered in-process with [RenderSVG] or fed to external
// Graphviz tooling.
//
// Group members are emitted inside a dashed subgraph cluster named after
// the group. Cycle wrap edges are dashed and excluded from rank
// constraints so long chains stay flat.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	clustered := map[string]int{}
	for i, c := range g.Clusters {
		for _, key := range c.Keys {
			if _, taken := clustered[key]; !taken {
				clustered[key] = i
			}
		}
	}

	for _, n := range g.Nodes {
		if _, inCluster := clustered[n.Key]; inCluster {
			continue
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.Key, fmtLabel(n, opts.Detailed))
	}

	for i, c := range g.Clusters {
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+c.Name)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Name)
		buf.WriteString("    style=dashed;\n")
		for _, n := range g.Nodes {
			if clustered[n.Key] != i {
				continue
			}
			fmt.Fprintf(&buf, "    %q [label=%q];\n", n.Key, fmtLabel(n, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		switch e.Kind {
		case EdgeCycle:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, constraint=false];\n", e.From, e.To)
		case EdgeGroup:
			fmt.Fprintf(&buf, "  %q -> %q [color=grey50];\n", e.From, e.To)
		default:
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	if !detailed {
		return plan.TitleFromKey(n.Key)
	}

	parts := []string{fmt.Sprintf("page: %d", n.Page)}
	for _, k := range slices.Sorted(maps.Keys(n.Params)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, plan.ValueString(n.Params[k])))
	}

	return n.Key + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root <svg> tag to a zero-origin viewBox
// with pixel width/height. Graphviz emits point-based dimensions, which
// scale poorly in browsers and image viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
