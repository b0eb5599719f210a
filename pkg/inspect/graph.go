package inspect

import (
	"fmt"

	"github.com/planweave/planweave/pkg/links"
	"github.com/planweave/planweave/pkg/plan"
)

// EdgeKind classifies a link-graph edge.
type EdgeKind int

const (
	// EdgeNext is a calendar successor: the week or month one step ahead.
	EdgeNext EdgeKind = iota
	// EdgeGroup connects consecutive members of a declared group.
	EdgeGroup
	// EdgeCycle is the wrap-around edge of a cycling group, from its last
	// member back to its first.
	EdgeCycle
)

// Node is one declared page in the link graph.
type Node struct {
	Key    string
	Page   int
	Type   string
	Params plan.Params
}

// Edge is a directed link between two destination keys.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Cluster is a declared page group and its ordered member keys.
type Cluster struct {
	Name  string
	Cycle bool
	Keys  []string
}

// Graph is the link structure of a fully declared plan. Nodes appear in
// page order; edges are deduplicated by endpoint pair.
type Graph struct {
	Nodes    []Node
	Edges    []Edge
	Clusters []Cluster
}

// Collect runs the declare pass of define and assembles the plan's link
// graph from the resulting registry. Nothing is rendered; page builders
// are never consulted.
func Collect(define func(b *plan.Builder) error) (*Graph, error) {
	b := plan.NewBuilder()
	if err := define(b); err != nil {
		return nil, fmt.Errorf("declare: %w", err)
	}
	if err := b.Err(); err != nil {
		return nil, fmt.Errorf("declare: %w", err)
	}

	reg, err := links.Build(b.Pages(), b.Groups())
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	g := &Graph{}
	seen := map[[2]string]bool{}
	addEdge := func(from, to string, kind EdgeKind) {
		pair := [2]string{from, to}
		if seen[pair] {
			return
		}
		seen[pair] = true
		g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
	}

	for _, info := range reg.Pages() {
		g.Nodes = append(g.Nodes, Node{
			Key:    info.Key,
			Page:   info.PageNumber,
			Type:   info.PageType,
			Params: info.Params,
		})

		res, ok := reg.ResolverFor(info.Key)
		if !ok {
			continue
		}
		if next, ok := res.NextWeek(); ok {
			addEdge(info.Key, next.Key, EdgeNext)
		}
		if next, ok := res.MonthOffset(1); ok {
			addEdge(info.Key, next.Key, EdgeNext)
		}
	}

	for _, name := range reg.GroupNames() {
		keys, cycle, _ := reg.Group(name)
		g.Clusters = append(g.Clusters, Cluster{Name: name, Cycle: cycle, Keys: keys})

		for i := 0; i+1 < len(keys); i++ {
			addEdge(keys[i], keys[i+1], EdgeGroup)
		}
		if cycle && len(keys) > 1 {
			addEdge(keys[len(keys)-1], keys[0], EdgeCycle)
		}
	}
	return g, nil
}
