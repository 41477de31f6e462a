package application

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/ryan-williams/watchy/domain"
)

// Collector walks changed snapshot paths and accumulates per-entity username
// diffs into a ChangeSet. It runs in one of two modes: against the working
// tree's uncommitted changes, or against a range of historical points.
type Collector struct {
	store  domain.Store
	reader *SnapshotReader
}

// NewCollector creates a collector over the given store.
func NewCollector(store domain.Store) *Collector {
	return &Collector{store: store, reader: NewSnapshotReader(store)}
}

// WorkingTree collects the diffs pending in the working tree: modified
// snapshot files are compared against HEAD, and every newly introduced path is
// recorded raw — even unclassified ones, so unexpected new files get noticed.
func (c *Collector) WorkingTree() (*domain.ChangeSet, error) {
	changes, err := c.store.WorktreeChanges()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	cs := domain.NewChangeSet()
	for _, path := range changes.Added {
		cs.RecordNewPath(path)
	}

	for _, path := range changes.Modified {
		if !strings.HasSuffix(path, domain.SnapshotExt) {
			continue
		}
		sp := domain.Classify(path)
		if sp.Kind == domain.KindUnclassified {
			logger.Debugf("Skipping unclassified modified path %s", path)
			continue
		}

		before, readErr := c.reader.ReadNames(path, domain.Head)
		if readErr != nil {
			return nil, readErr
		}
		after, readErr := c.reader.ReadNames(path, domain.Worktree)
		if readErr != nil {
			return nil, readErr
		}

		added, removed := domain.Diff(before, after)
		cs.Record(sp, added, removed)
	}

	return cs, nil
}

// Range collects the diffs introduced by a single historical point or a
// contiguous "start..end" range. Points are processed oldest to newest, each
// diffed against its first parent; a root point is compared to an empty
// baseline.
func (c *Collector) Range(spec string) (*domain.ChangeSet, error) {
	refs, err := c.store.CommitsInRange(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", spec, err)
	}

	cs := domain.NewChangeSet()
	for _, ref := range refs {
		if collectErr := c.collectPoint(cs, ref); collectErr != nil {
			return nil, collectErr
		}
	}
	return cs, nil
}

func (c *Collector) collectPoint(cs *domain.ChangeSet, ref domain.Ref) error {
	parent, hasParent, err := c.store.Parent(ref)
	if err != nil {
		return fmt.Errorf("failed to resolve parent of %s: %w", ref, err)
	}

	var parentRef domain.Ref
	if hasParent {
		parentRef = parent
	}
	changed, err := c.store.ChangedPaths(parentRef, ref)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", ref, err)
	}

	for _, path := range changed.Added {
		if strings.HasSuffix(path, domain.SnapshotExt) {
			cs.RecordNewPath(path)
		}
	}

	for _, path := range changed.Modified {
		if !strings.HasSuffix(path, domain.SnapshotExt) {
			continue
		}
		sp := domain.Classify(path)
		if sp.Kind == domain.KindUnclassified {
			continue
		}

		before := domain.NameSet{}
		if hasParent {
			var readErr error
			before, readErr = c.reader.ReadNames(path, parent)
			if readErr != nil {
				return readErr
			}
		}
		after, readErr := c.reader.ReadNames(path, ref)
		if readErr != nil {
			return readErr
		}

		added, removed := domain.Diff(before, after)
		cs.Record(sp, added, removed)
	}

	return nil
}
