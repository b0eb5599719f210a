package layout

// Dim is an optional dimension in grid units. The zero value is absent,
// which lets constraint structs distinguish "not constrained" from an
// explicit zero without sentinel values.
type Dim struct {
	value int
	set   bool
}

// Fixed returns a Dim holding an explicit size.
func Fixed(v int) Dim {
	return Dim{value: v, set: true}
}

// IsSet reports whether the dimension was explicitly given.
func (d Dim) IsSet() bool { return d.set }

// Value returns the dimension's value. Zero when absent.
func (d Dim) Value() int { return d.value }

// Or returns the dimension's value when set, else fallback.
func (d Dim) Or(fallback int) int {
	if d.set {
		return d.value
	}
	return fallback
}
