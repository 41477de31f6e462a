package domain

// ChangeSet aggregates the username diffs observed in one collection pass,
// keyed by "owner/repo" for stars and by username for follows. NewPaths holds
// the raw paths of snapshot files introduced during the pass.
//
// A key is present in a map only if its NameSet is non-empty; empty diffs are
// never inserted.
type ChangeSet struct {
	StarsAdded     map[string]NameSet
	StarsRemoved   map[string]NameSet
	FollowsAdded   map[string]NameSet
	FollowsRemoved map[string]NameSet
	NewPaths       map[string]struct{}
}

// NewChangeSet returns an empty ChangeSet ready for accumulation.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		StarsAdded:     map[string]NameSet{},
		StarsRemoved:   map[string]NameSet{},
		FollowsAdded:   map[string]NameSet{},
		FollowsRemoved: map[string]NameSet{},
		NewPaths:       map[string]struct{}{},
	}
}

// Record merges one snapshot's diff into the set under the classified key.
// Unclassified paths contribute nothing.
func (c *ChangeSet) Record(path SnapshotPath, added, removed NameSet) {
	switch path.Kind {
	case KindRepoStars:
		mergeInto(c.StarsAdded, path.RepoKey(), added)
		mergeInto(c.StarsRemoved, path.RepoKey(), removed)
	case KindUserFollows:
		mergeInto(c.FollowsAdded, path.User, added)
		mergeInto(c.FollowsRemoved, path.User, removed)
	case KindUnclassified:
	}
}

// RecordNewPath registers a newly introduced snapshot file by raw path.
func (c *ChangeSet) RecordNewPath(path string) {
	c.NewPaths[path] = struct{}{}
}

// Empty reports whether the pass observed nothing at all.
func (c *ChangeSet) Empty() bool {
	return len(c.StarsAdded) == 0 &&
		len(c.StarsRemoved) == 0 &&
		len(c.FollowsAdded) == 0 &&
		len(c.FollowsRemoved) == 0 &&
		len(c.NewPaths) == 0
}

func mergeInto(m map[string]NameSet, key string, names NameSet) {
	if names.Len() == 0 {
		return
	}
	set, ok := m[key]
	if !ok {
		set = NameSet{}
		m[key] = set
	}
	set.Merge(names)
}
