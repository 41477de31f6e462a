package application

import (
	"fmt"

	"github.com/ryan-williams/watchy/domain"
)

// SnapshotReader reads a snapshot's NameSet at a historical ref or from the
// working tree. A missing path is normal — it collapses to an empty set —
// while any other store failure propagates and aborts the collection pass.
type SnapshotReader struct {
	store domain.Store
}

// NewSnapshotReader creates a reader over the given store.
func NewSnapshotReader(store domain.Store) *SnapshotReader {
	return &SnapshotReader{store: store}
}

// ReadNames returns the set of logins recorded at ref, or from the working
// tree for domain.Worktree. Paths absent at the ref yield an empty set.
func (r *SnapshotReader) ReadNames(path string, ref domain.Ref) (domain.NameSet, error) {
	content, found, err := r.store.ContentAt(path, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	if !found {
		return domain.NameSet{}, nil
	}
	return domain.ParseNames(content), nil
}
