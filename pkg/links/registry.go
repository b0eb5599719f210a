package links

import (
	"reflect"
	"sort"

	"github.com/planweave/planweave/pkg/errors"
	"github.com/planweave/planweave/pkg/plan"
)

// DestinationInfo identifies one rendered page for linking. It is created
// exactly once per page during registration and immutable afterwards.
type DestinationInfo struct {
	Key        string      // Stable destination key
	PageNumber int         // 1-based render position
	PageType   string      // Declared page type
	Params     plan.Params // Snapshot of the declaration's params
}

// group is a named ordered destination list with its cycle flag.
type group struct {
	keys  []string
	cycle bool
}

// Registry indexes declared pages by destination key, page type and group.
// It is built between the declare and render phases and discarded with the
// build.
type Registry struct {
	pages  []DestinationInfo
	byKey  map[string]DestinationInfo
	byType map[string][]DestinationInfo
	groups map[string]group
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[string]DestinationInfo),
		byType: make(map[string][]DestinationInfo),
		groups: make(map[string]group),
	}
}

// Build constructs a frozen registry from a completed declare pass. Pages
// are numbered by their 1-based position in declaration order, which equals
// the final render order.
func Build(pages []*plan.PageDeclaration, groups []*plan.GroupDeclaration) (*Registry, error) {
	reg := NewRegistry()
	for i, decl := range pages {
		if err := reg.Register(decl, i+1); err != nil {
			return nil, err
		}
	}
	for _, g := range groups {
		reg.AddGroup(g)
	}
	return reg, nil
}

// Register indexes one declared page under the given 1-based page number.
// Each destination key may be registered only once per build.
func (r *Registry) Register(decl *plan.PageDeclaration, pageNumber int) error {
	key := decl.DestinationKey()
	if _, exists := r.byKey[key]; exists {
		return errors.New(errors.ErrCodeInvalidPlan, "duplicate destination key %q", key)
	}

	info := DestinationInfo{
		Key:        key,
		PageNumber: pageNumber,
		PageType:   decl.Type,
		Params:     decl.Params.Clone(),
	}
	r.pages = append(r.pages, info)
	r.byKey[key] = info
	r.byType[decl.Type] = append(r.byType[decl.Type], info)
	return nil
}

// AddGroup records a declared group's ordered destination list.
func (r *Registry) AddGroup(g *plan.GroupDeclaration) {
	r.groups[g.Name] = group{keys: g.Keys(), cycle: g.Cycle}
}

// Lookup returns the destination registered under an exact key.
func (r *Registry) Lookup(key string) (DestinationInfo, bool) {
	info, ok := r.byKey[key]
	return info, ok
}

// Resolve answers a destination query. With no params it is an exact-key
// lookup. With params it scans the page type's bucket in registration order
// and returns the first entry whose params are compatible with every query
// param, or a miss.
func (r *Registry) Resolve(pageType string, params plan.Params) (DestinationInfo, bool) {
	if len(params) == 0 {
		return r.Lookup(pageType)
	}
	for _, info := range r.byType[pageType] {
		if matches(info.Params, params) {
			return info, true
		}
	}
	return DestinationInfo{}, false
}

// NextInCycle returns the destination following current in the group's
// fixed order, wrapping past the end. An unknown current key falls back to
// the group's first destination. Misses only occur for unknown or empty
// groups.
func (r *Registry) NextInCycle(groupName, current string) (DestinationInfo, bool) {
	g, ok := r.groups[groupName]
	if !ok || len(g.keys) == 0 {
		return DestinationInfo{}, false
	}

	next := g.keys[0]
	for i, key := range g.keys {
		if key == current {
			next = g.keys[(i+1)%len(g.keys)]
			break
		}
	}
	return r.Lookup(next)
}

// Pages returns every destination in registration order.
func (r *Registry) Pages() []DestinationInfo {
	out := make([]DestinationInfo, len(r.pages))
	copy(out, r.pages)
	return out
}

// GroupNames returns the registered group names, sorted.
func (r *Registry) GroupNames() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns a group's ordered destination keys and cycle flag.
func (r *Registry) Group(name string) (keys []string, cycle bool, ok bool) {
	g, found := r.groups[name]
	if !found {
		return nil, false, false
	}
	keys = make([]string, len(g.keys))
	copy(keys, g.keys)
	return keys, g.cycle, true
}

// matches reports whether stored params satisfy every query param.
func matches(stored, query plan.Params) bool {
	for key, want := range query {
		have, ok := stored[key]
		if !ok || !compatible(have, want) {
			return false
		}
	}
	return true
}

// compatible implements the permissive parameter comparator: equal values;
// else a stored numeric identity against an integer query; else string
// forms, but only when a plain scalar is involved so distinct reference
// types never match each other.
func compatible(stored, query plan.Value) bool {
	if equalValue(stored, query) {
		return true
	}
	if n, ok := plainInt(query); ok {
		if sn, sok := plan.NumberOf(stored); sok && sn == n {
			return true
		}
	}
	_, storedPlain := stored.(plan.Plain)
	_, queryPlain := query.(plan.Plain)
	if storedPlain || queryPlain {
		return plan.ValueString(stored) == plan.ValueString(query)
	}
	return false
}

// equalValue compares two values of the same kind. Week and month
// references compare by number; plain scalars by deep equality.
func equalValue(a, b plan.Value) bool {
	switch a := a.(type) {
	case plan.WeekRef:
		b, ok := b.(plan.WeekRef)
		return ok && a.Week.Number == b.Week.Number
	case plan.MonthRef:
		b, ok := b.(plan.MonthRef)
		return ok && a.Month.Number == b.Month.Number && a.Month.Year == b.Month.Year
	case plan.Plain:
		b, ok := b.(plan.Plain)
		return ok && reflect.DeepEqual(a.V, b.V)
	}
	return false
}

// plainInt extracts an integer from a plain scalar query param.
func plainInt(v plan.Value) (int, bool) {
	p, ok := v.(plan.Plain)
	if !ok {
		return 0, false
	}
	n, ok := p.V.(int)
	return n, ok
}
