package domain

import "errors"

// Ref identifies a historical point in the snapshot store.
// The empty Worktree ref addresses the live, uncommitted state.
type Ref string

const (
	// Worktree addresses the current on-disk state.
	Worktree Ref = ""
	// Head addresses the most recent historical point.
	Head Ref = "HEAD"
)

// ErrNotARepository is returned when the snapshot root is not version tracked.
var ErrNotARepository = errors.New("not a git repository")

// PathChanges groups the paths touched by one change: Modified paths existed
// before and differ, Added paths are newly introduced.
type PathChanges struct {
	Modified []string
	Added    []string
}

// Store is the versioned snapshot store. Implementations resolve refs,
// enumerate changed paths, and retrieve content at any historical point or
// from the working tree.
type Store interface {
	// WorktreeChanges reports uncommitted modifications and newly introduced
	// (staged or untracked) paths.
	WorktreeChanges() (PathChanges, error)

	// CommitsInRange resolves a single ref or a "start..end" range to the
	// historical points it covers, ordered oldest to newest. A single ref
	// resolves to a range of length one.
	CommitsInRange(spec string) ([]Ref, error)

	// Parent returns the first parent of a point. ok is false for a root
	// point, which has no predecessor.
	Parent(ref Ref) (parent Ref, ok bool, err error)

	// ChangedPaths diffs a point against its predecessor. An empty parent
	// means the point is a root and every path in it counts as added.
	ChangedPaths(parent, ref Ref) (PathChanges, error)

	// ContentAt returns a path's content at a ref, or from the working tree
	// for the Worktree ref. An absent path reports found=false with no error;
	// any other failure is an error.
	ContentAt(path string, ref Ref) (content []byte, found bool, err error)

	// HasChangesToCommit reports whether the working tree holds any staged or
	// unstaged changes.
	HasChangesToCommit() (bool, error)

	// StageAndCommit stages all pending changes and commits them with the
	// given message.
	StageAndCommit(message string) error

	// AmendLastMessage rewrites the most recent commit's message in place.
	AmendLastMessage(message string) error
}

// Sink persists snapshot files, creating parent directories as needed and
// overwriting any previous content.
type Sink interface {
	WriteNames(path string, names NameSet) error
}
