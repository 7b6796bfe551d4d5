package ast

// ToplevelEntry wraps an operator subtree with the anchor/negation
// modifiers that only make sense at toplevel: front/back checks and
// entry-level negation. FrontCheck and BackCheck are mutually exclusive.
type ToplevelEntry struct {
	Negated    bool
	FrontCheck bool
	BackCheck  bool
	Opt        Opt
}

// Component is a RegexComponent: either a single ToplevelEntry, or the
// surface form of `&`-joined entries (AllOfComponent) where each entry may
// independently be negated or anchored.
type Component interface {
	componentNode()
}

// Single is a RegexComponent wrapping exactly one entry.
type Single struct{ Entry ToplevelEntry }

// AllOfComponent is the `&`-joined surface form of multiple entries.
type AllOfComponent struct{ Entries []ToplevelEntry }

func (Single) componentNode()         {}
func (AllOfComponent) componentNode() {}

// Entries returns the flattened list of toplevel entries in a component,
// regardless of whether it's a Single or an AllOfComponent.
func Entries(c Component) []ToplevelEntry {
	switch v := c.(type) {
	case Single:
		return []ToplevelEntry{v.Entry}
	case AllOfComponent:
		return v.Entries
	default:
		return nil
	}
}
