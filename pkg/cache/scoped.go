package cache

// ScopedKeyer wraps a Keyer with a prefix so several plans can share one
// cache directory without key collisions.
//
// Example usage:
//
//	// Keys for the work planner
//	workKeyer := NewScopedKeyer(NewDefaultKeyer(), "plan:work:")
//
//	// Keys for the family planner
//	familyKeyer := NewScopedKeyer(NewDefaultKeyer(), "plan:family:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(planHash, opts)
}

// EventsKey generates a prefixed key for expanded event occurrences.
func (k *ScopedKeyer) EventsKey(pattern string, year int) string {
	return k.prefix + k.inner.EventsKey(pattern, year)
}
