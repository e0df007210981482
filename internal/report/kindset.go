package report

// KindSet is an unordered set of kinds. The zero value is an empty set
// usable for lookups.
type KindSet map[Kind]struct{}

// NewKindSet builds a set from the given kinds.
func NewKindSet(kinds ...Kind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set. Safe on a nil set.
func (s KindSet) Has(k Kind) bool {
	_, ok := s[k]
	return ok
}

// Add inserts k and returns the set for chaining.
func (s KindSet) Add(k Kind) KindSet {
	s[k] = struct{}{}
	return s
}

// Len returns the number of kinds in the set.
func (s KindSet) Len() int {
	return len(s)
}
