package plan

import (
	"github.com/planweave/planweave/pkg/errors"
)

// TitleFunc looks up an outline title for a page type and its params.
// Returning false falls back to a formatted destination key.
type TitleFunc func(pageType string, params Params) (string, bool)

// BuilderOption configures a [Builder].
type BuilderOption func(*Builder)

// WithTitleLookup installs the pluggable page-type title lookup used by
// pages declared with [WithOutline].
func WithTitleLookup(fn TitleFunc) BuilderOption {
	return func(b *Builder) {
		b.titleLookup = fn
	}
}

// Builder collects page, group and outline declarations from a definition.
// It is single-threaded and used for exactly one declare pass; group and
// section blocks nest via explicit scope stacks with guaranteed pops.
type Builder struct {
	titleLookup TitleFunc

	pages   []*PageDeclaration
	groups  []*GroupDeclaration
	outline []*OutlineDeclaration

	groupStack   []*GroupDeclaration
	sectionStack []*OutlineDeclaration

	err error // first declaration error, sticky
}

// NewBuilder returns an empty declaration collector.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PageOption configures a single page declaration.
type PageOption func(*PageDeclaration)

// WithID sets an explicit destination key, overriding the derived one.
func WithID(id string) PageOption {
	return func(d *PageDeclaration) {
		d.ID = id
	}
}

// WithOutline requests an auto-titled outline entry for the page.
func WithOutline() PageOption {
	return func(d *PageDeclaration) {
		d.Outline = true
	}
}

// WithOutlineTitle requests an outline entry with an explicit title.
func WithOutlineTitle(title string) PageOption {
	return func(d *PageDeclaration) {
		d.OutlineTitle = title
	}
}

// WithParam adds one parameter, wrapping the value via [Val].
func WithParam(key string, v any) PageOption {
	return func(d *PageDeclaration) {
		d.Params[key] = Val(v)
	}
}

// WithParams merges a parameter map into the declaration.
func WithParams(params Params) PageOption {
	return func(d *PageDeclaration) {
		for k, v := range params {
			d.Params[k] = v
		}
	}
}

// Page declares one page. The declaration joins the master ordered list,
// the innermost active group, and, when an outline entry is requested,
// the innermost active outline section.
func (b *Builder) Page(pageType string, opts ...PageOption) *PageDeclaration {
	decl := &PageDeclaration{Type: pageType, Params: Params{}}
	for _, opt := range opts {
		opt(decl)
	}

	if err := errors.ValidatePageType(pageType); err != nil {
		b.setErr(err)
	}
	if decl.ID != "" {
		if err := errors.ValidateDestinationKey(decl.ID); err != nil {
			b.setErr(err)
		}
	}

	b.pages = append(b.pages, decl)
	if n := len(b.groupStack); n > 0 {
		g := b.groupStack[n-1]
		g.Pages = append(g.Pages, decl)
	}

	if decl.Outline || decl.OutlineTitle != "" {
		title := decl.OutlineTitle
		if title == "" {
			title = b.pageTitle(decl)
		}
		b.addOutline(&OutlineDeclaration{Title: title, Dest: decl.DestinationKey()})
	}
	return decl
}

// GroupOptions configures a [Builder.Group] block.
type GroupOptions struct {
	// Cycle enables wrap-around next-in-cycle navigation over the group.
	Cycle bool
	// OutlineTitle wraps the group's outline entries in a section with
	// this title; the section links to its first entry.
	OutlineTitle string
}

// Group declares a named page group and runs fn with the group active:
// pages declared inside join the group in order.
func (b *Builder) Group(name string, opts GroupOptions, fn func()) *GroupDeclaration {
	if err := errors.ValidateGroupName(name); err != nil {
		b.setErr(err)
	}

	g := &GroupDeclaration{Name: name, Cycle: opts.Cycle, OutlineTitle: opts.OutlineTitle}
	b.groups = append(b.groups, g)

	b.groupStack = append(b.groupStack, g)
	defer func() {
		b.groupStack = b.groupStack[:len(b.groupStack)-1]
	}()

	if opts.OutlineTitle != "" {
		section := &OutlineDeclaration{Title: opts.OutlineTitle}
		b.addOutline(section)
		b.sectionStack = append(b.sectionStack, section)
		defer func() {
			b.sectionStack = b.sectionStack[:len(b.sectionStack)-1]
			if len(section.Children) > 0 {
				section.Dest = section.Children[0].Dest
			}
		}()
	}

	fn()
	return g
}

// SectionOptions configures a [Builder.OutlineSection] block.
type SectionOptions struct {
	// Dest links the section header to an explicit destination key.
	Dest string
	// DestFirst resolves the section's destination to its first child's
	// destination once the block completes. Sections that end up with no
	// children stay non-clickable.
	DestFirst bool
}

// OutlineSection declares an outline section and runs fn with the section
// active: outline entries created inside nest under it. The destination is
// resolved after the block when [SectionOptions.DestFirst] is set.
func (b *Builder) OutlineSection(title string, opts SectionOptions, fn func()) *OutlineDeclaration {
	if opts.Dest != "" && opts.DestFirst {
		b.setErr(errors.New(errors.ErrCodeInvalidPlan, "outline section %q: dest and dest-first are mutually exclusive", title))
	}

	section := &OutlineDeclaration{Title: title, Dest: opts.Dest}
	b.addOutline(section)

	b.sectionStack = append(b.sectionStack, section)
	defer func() {
		b.sectionStack = b.sectionStack[:len(b.sectionStack)-1]
		if opts.DestFirst && len(section.Children) > 0 {
			section.Dest = section.Children[0].Dest
		}
	}()

	fn()
	return section
}

// OutlineEntry declares a single outline entry pointing at dest.
func (b *Builder) OutlineEntry(dest, title string) *OutlineDeclaration {
	entry := &OutlineDeclaration{Title: title, Dest: dest}
	b.addOutline(entry)
	return entry
}

// Pages returns the master ordered page list. The slice is owned by the
// builder; callers must not mutate it.
func (b *Builder) Pages() []*PageDeclaration { return b.pages }

// Groups returns the declared groups in declaration order.
func (b *Builder) Groups() []*GroupDeclaration { return b.groups }

// Outline returns the root outline forest.
func (b *Builder) Outline() []*OutlineDeclaration { return b.outline }

// Err returns the first declaration error, if any. The orchestrator checks
// it once the declare pass completes.
func (b *Builder) Err() error { return b.err }

// pageTitle derives an outline title for a page declared with outline: the
// pluggable lookup first, then the formatted destination key.
func (b *Builder) pageTitle(decl *PageDeclaration) string {
	if b.titleLookup != nil {
		if title, ok := b.titleLookup(decl.Type, decl.Params); ok {
			return title
		}
	}
	return TitleFromKey(decl.DestinationKey())
}

// addOutline appends an entry to the innermost active section, or to the
// root forest when no section is open.
func (b *Builder) addOutline(o *OutlineDeclaration) {
	if n := len(b.sectionStack); n > 0 {
		s := b.sectionStack[n-1]
		s.Children = append(s.Children, o)
		return
	}
	b.outline = append(b.outline, o)
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}
