package ability

// FieldSet is a resolved set of permitted field names. A nil *FieldSet
// means unrestricted; all methods are nil-receiver-safe and an
// unrestricted set allows every name.
type FieldSet struct {
	names map[string]struct{}
	order []string
}

// NewFieldSet returns a restricted set holding the given names. The
// result is non-nil even for zero names: an empty set permits nothing
// beyond what call sites add on top.
func NewFieldSet(names ...string) *FieldSet {
	s := &FieldSet{names: make(map[string]struct{}, len(names))}
	return s.add(names)
}

// Restricted reports whether the set restricts field access at all.
func (s *FieldSet) Restricted() bool {
	return s != nil
}

// Allows reports whether the named field may be referenced.
// Unrestricted sets allow everything.
func (s *FieldSet) Allows(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s.names[name]
	return ok
}

// AllowsPath reports whether a dotted attribute path may be referenced.
// A path is allowed when one of the set's names equals it, is an
// ancestor of it (permitting "author" covers "author.name"), or is a
// descendant of it (permitting "author.name" lets traversal pass
// through "author"). Unrestricted sets allow everything.
func (s *FieldSet) AllowsPath(path string) bool {
	if s == nil {
		return true
	}
	for _, name := range s.order {
		switch {
		case name == path:
			return true
		case len(path) > len(name) && path[len(name)] == '.' && path[:len(name)] == name:
			return true
		case len(name) > len(path) && name[len(path)] == '.' && name[:len(path)] == path:
			return true
		}
	}
	return false
}

// With returns a set extended with the given names. The receiver is not
// modified; an unrestricted set stays unrestricted.
func (s *FieldSet) With(names ...string) *FieldSet {
	if s == nil {
		return nil
	}
	out := &FieldSet{names: make(map[string]struct{}, len(s.order)+len(names))}
	out.add(s.order)
	out.add(names)
	return out
}

// Names returns the field names in insertion order, or nil for an
// unrestricted set.
func (s *FieldSet) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the number of names in the set.
func (s *FieldSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *FieldSet) add(names []string) *FieldSet {
	for _, n := range names {
		if _, ok := s.names[n]; ok {
			continue
		}
		s.names[n] = struct{}{}
		s.order = append(s.order, n)
	}
	return s
}
