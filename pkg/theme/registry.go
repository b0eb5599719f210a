package theme

import (
	"sort"

	"github.com/planweave/planweave/pkg/errors"
)

// Registry holds named themes plus the active selection. It is the only
// piece of shared state the build pipeline touches, which is why it can be
// snapshotted and restored around a run.
//
// Registry is not safe for concurrent mutation; builds own their registry
// for the duration of a run.
type Registry struct {
	themes map[string]Theme
	active string
}

// NewRegistry returns a registry preloaded with [Default], which is also
// the active theme.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]Theme)}
	d := Default()
	r.themes[d.Name] = d
	r.active = d.Name
	return r
}

// Register adds or replaces a theme under its name.
func (r *Registry) Register(t Theme) error {
	if err := errors.ValidateIdentifier(t.Name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme name")
	}
	if t.PageCols <= 0 || t.PageRows <= 0 {
		return errors.New(errors.ErrCodeInvalidTheme, "theme %q: page extent must be positive, got %dx%d",
			t.Name, t.PageCols, t.PageRows)
	}
	r.themes[t.Name] = t
	return nil
}

// Get returns the theme registered under name.
func (r *Registry) Get(name string) (Theme, bool) {
	t, ok := r.themes[name]
	return t, ok
}

// Activate makes the named theme the active one.
func (r *Registry) Activate(name string) error {
	if _, ok := r.themes[name]; !ok {
		return errors.New(errors.ErrCodeThemeNotFound, "theme %q not registered (have: %v)", name, r.Names())
	}
	r.active = name
	return nil
}

// Active returns the currently active theme.
func (r *Registry) Active() Theme {
	return r.themes[r.active]
}

// ActiveName returns the name of the active theme.
func (r *Registry) ActiveName() string {
	return r.active
}

// Names returns all registered theme names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot captures the active selection so it can be restored later.
type Snapshot struct {
	active string
}

// Snapshot records the current active selection.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{active: r.active}
}

// Restore reinstates a selection captured by [Registry.Snapshot]. If the
// snapshotted theme has been removed in the meantime, the selection falls
// back to the default theme.
func (r *Registry) Restore(s Snapshot) {
	if _, ok := r.themes[s.active]; ok {
		r.active = s.active
		return
	}
	r.active = Default().Name
}
