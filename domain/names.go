package domain

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// NameSet is an unordered, deduplicated set of GitHub login names.
// Blank names are never stored.
type NameSet map[string]struct{}

// NewNameSet builds a set from the given names, dropping blanks.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// ParseNames splits snapshot file content into a NameSet: one login per line,
// whitespace trimmed, blank lines dropped, duplicates collapsed.
func ParseNames(content []byte) NameSet {
	lines := strings.Split(string(content), "\n")
	set := make(NameSet, len(lines))
	for _, line := range lines {
		set.Add(strings.TrimSpace(line))
	}
	return set
}

// Add inserts a name into the set. Empty strings are ignored.
func (s NameSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Contains reports whether the set holds the given name.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names in the set.
func (s NameSet) Len() int { return len(s) }

// Sorted returns the names in lexicographic order.
func (s NameSet) Sorted() []string {
	names := lo.Keys(s)
	sort.Strings(names)
	return names
}

// Merge adds every name from other into s.
func (s NameSet) Merge(other NameSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Subtract returns the names in s that are not in other.
func (s NameSet) Subtract(other NameSet) NameSet {
	result := NameSet{}
	for name := range s {
		if !other.Contains(name) {
			result[name] = struct{}{}
		}
	}
	return result
}

// Diff compares two snapshots of the same entity:
// added holds names present in after but not before, removed the reverse.
func Diff(before, after NameSet) (added, removed NameSet) {
	return after.Subtract(before), before.Subtract(after)
}
