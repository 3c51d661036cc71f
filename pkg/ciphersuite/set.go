package ciphersuite

import "sort"

// Set is an unordered collection of suite names keyed by value.
//
// A nil Set means "not configured" wherever a Set is optional; an empty
// non-nil Set is configured but empty.
type Set map[string]struct{}

// NewSet returns a non-nil Set holding names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the names in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
