package plan

import (
	"sort"
	"strings"
	"unicode"
)

// Params maps parameter names to values.
type Params map[string]Value

// Clone returns a shallow copy of the parameter map. Values are immutable,
// so a shallow copy is a safe snapshot.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// serialize renders the params deterministically: keys sorted, joined as
// "k1=v1,k2=v2". Week and month references serialize by their numbers so
// derived keys stay stable across builds.
func (p Params) serialize() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + ValueString(p[k])
	}
	return strings.Join(parts, ",")
}

// PageDeclaration records one declared page.
type PageDeclaration struct {
	Type         string // Page type tag resolved against the page registry
	ID           string // Optional explicit destination key
	Outline      bool   // Auto-derive an outline entry for this page
	OutlineTitle string // Explicit outline title (implies an entry)
	Params       Params
}

// DestinationKey returns the page's stable destination key: the explicit ID
// when given, else the type plus a deterministic serialization of the
// sorted params.
func (d *PageDeclaration) DestinationKey() string {
	if d.ID != "" {
		return d.ID
	}
	if len(d.Params) == 0 {
		return d.Type
	}
	return d.Type + ":" + d.Params.serialize()
}

// GroupDeclaration records a named, ordered set of pages used for cycling
// navigation (tab strips, quarter dividers).
type GroupDeclaration struct {
	Name         string
	Pages        []*PageDeclaration
	Cycle        bool
	OutlineTitle string
}

// Keys returns the destination keys of the group's pages in order.
func (g *GroupDeclaration) Keys() []string {
	keys := make([]string, len(g.Pages))
	for i, p := range g.Pages {
		keys[i] = p.DestinationKey()
	}
	return keys
}

// OutlineDeclaration is one node of the declared outline forest. Dest is
// empty for non-clickable headers.
type OutlineDeclaration struct {
	Title    string
	Dest     string
	Children []*OutlineDeclaration
}

// IsSection reports whether the entry is a section, which is the case
// exactly when it has children.
func (o *OutlineDeclaration) IsSection() bool {
	return len(o.Children) > 0
}

// TitleFromKey derives a human-readable fallback title from a destination
// key: separators become spaces and each word is capitalized, so
// "weekly:week=14" becomes "Weekly Week 14".
func TitleFromKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		switch r {
		case ':', '=', ',', '-', '_', '.':
			return true
		}
		return false
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
