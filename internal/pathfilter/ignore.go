package pathfilter

import "sort"

// IgnoreSet holds directory names whose subtrees are skipped.
// Matching is exact: "node" does not prune "node_modules".
type IgnoreSet map[string]struct{}

// NewIgnoreSet builds a set from names; duplicates collapse.
func NewIgnoreSet(names []string) IgnoreSet {
	set := make(IgnoreSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Contains reports whether dirName is ignored. A nil set ignores nothing.
func (s IgnoreSet) Contains(dirName string) bool {
	if s == nil {
		return false
	}
	_, ok := s[dirName]
	return ok
}

// Names returns the ignored names in sorted order.
func (s IgnoreSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
