// Package gitstore implements the versioned snapshot store on top of a git
// repository, using go-git for status, history walking, and commits.
package gitstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/ryan-williams/watchy/domain"
)

// Store is the go-git backed implementation of domain.Store.
type Store struct {
	repo *git.Repository
	root string
}

// Open opens the git repository at dir. Returns domain.ErrNotARepository when
// dir is not version tracked.
func Open(dir string) (*Store, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotARepository
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	return &Store{repo: repo, root: wt.Filesystem.Root()}, nil
}

// WorktreeChanges reports pending modifications and newly introduced paths
// from the repository status, sorted for deterministic iteration.
func (s *Store) WorktreeChanges() (domain.PathChanges, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return domain.PathChanges{}, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return domain.PathChanges{}, fmt.Errorf("failed to read status: %w", err)
	}

	var changes domain.PathChanges
	for path, fileStatus := range status {
		switch {
		case fileStatus.Staging == git.Added || fileStatus.Worktree == git.Untracked:
			changes.Added = append(changes.Added, path)
		case fileStatus.Staging == git.Modified || fileStatus.Worktree == git.Modified:
			changes.Modified = append(changes.Modified, path)
		}
	}
	sort.Strings(changes.Added)
	sort.Strings(changes.Modified)
	return changes, nil
}

// CommitsInRange resolves a single revision or a "start..end" range to the
// commits it covers, oldest first. Ranges follow first-parent ancestry from
// end back to (and excluding) start.
func (s *Store) CommitsInRange(spec string) ([]domain.Ref, error) {
	if start, end, ok := strings.Cut(spec, ".."); ok {
		return s.firstParentRange(start, end)
	}

	hash, err := s.resolve(spec)
	if err != nil {
		return nil, err
	}
	return []domain.Ref{domain.Ref(hash.String())}, nil
}

func (s *Store) firstParentRange(start, end string) ([]domain.Ref, error) {
	startHash, err := s.resolve(start)
	if err != nil {
		return nil, err
	}
	endHash, err := s.resolve(end)
	if err != nil {
		return nil, err
	}

	commit, err := s.repo.CommitObject(*endHash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", endHash, err)
	}

	var refs []domain.Ref
	for commit.Hash != *startHash {
		refs = append(refs, domain.Ref(commit.Hash.String()))
		if commit.NumParents() == 0 {
			return nil, fmt.Errorf("%s is not a first-parent ancestor of %s", start, end)
		}
		commit, err = commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to walk history: %w", err)
		}
	}

	slices.Reverse(refs)
	return refs, nil
}

// Parent returns a commit's first parent; merges follow the first parent only.
func (s *Store) Parent(ref domain.Ref) (domain.Ref, bool, error) {
	commit, err := s.commitAt(ref)
	if err != nil {
		return "", false, err
	}
	if commit.NumParents() == 0 {
		return "", false, nil
	}
	return domain.Ref(commit.ParentHashes[0].String()), true, nil
}

// ChangedPaths diffs ref against parent. With an empty parent the commit is a
// root and every file in its tree counts as added.
func (s *Store) ChangedPaths(parent, ref domain.Ref) (domain.PathChanges, error) {
	commit, err := s.commitAt(ref)
	if err != nil {
		return domain.PathChanges{}, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return domain.PathChanges{}, fmt.Errorf("failed to load tree of %s: %w", ref, err)
	}

	var changes domain.PathChanges
	if parent == "" {
		err = tree.Files().ForEach(func(f *object.File) error {
			changes.Added = append(changes.Added, f.Name)
			return nil
		})
		if err != nil {
			return domain.PathChanges{}, fmt.Errorf("failed to walk tree of %s: %w", ref, err)
		}
	} else {
		parentCommit, parentErr := s.commitAt(parent)
		if parentErr != nil {
			return domain.PathChanges{}, parentErr
		}
		parentTree, treeErr := parentCommit.Tree()
		if treeErr != nil {
			return domain.PathChanges{}, fmt.Errorf("failed to load tree of %s: %w", parent, treeErr)
		}

		diff, diffErr := object.DiffTree(parentTree, tree)
		if diffErr != nil {
			return domain.PathChanges{}, fmt.Errorf("failed to diff %s against %s: %w", ref, parent, diffErr)
		}
		for _, change := range diff {
			action, actionErr := change.Action()
			if actionErr != nil {
				return domain.PathChanges{}, fmt.Errorf("failed to classify change: %w", actionErr)
			}
			switch action {
			case merkletrie.Insert:
				changes.Added = append(changes.Added, change.To.Name)
			case merkletrie.Modify:
				changes.Modified = append(changes.Modified, change.To.Name)
			case merkletrie.Delete:
				// Deleted snapshots carry no content to diff.
			}
		}
	}

	sort.Strings(changes.Added)
	sort.Strings(changes.Modified)
	return changes, nil
}

// ContentAt reads a repo-relative path at a ref, or from the working tree for
// the Worktree ref. Absent paths report found=false with no error.
func (s *Store) ContentAt(path string, ref domain.Ref) ([]byte, bool, error) {
	if ref == domain.Worktree {
		data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return data, true, nil
	}

	commit, err := s.commitAt(ref)
	if err != nil {
		return nil, false, err
	}
	file, err := commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	content, err := file.Contents()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	return []byte(content), true, nil
}

// HasChangesToCommit reports whether the working tree is dirty.
func (s *Store) HasChangesToCommit() (bool, error) {
	wt, err := s.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read status: %w", err)
	}
	return !status.IsClean(), nil
}

// StageAndCommit stages every pending change and commits with the message.
func (s *Store) StageAndCommit(message string) error {
	wt, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if _, err := wt.Commit(message, &git.CommitOptions{}); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// AmendLastMessage rewrites HEAD's message without changing its content.
func (s *Store) AmendLastMessage(message string) error {
	wt, err := s.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if _, err := wt.Commit(message, &git.CommitOptions{Amend: true}); err != nil {
		return fmt.Errorf("failed to amend commit: %w", err)
	}
	return nil
}

func (s *Store) resolve(rev string) (*plumbing.Hash, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	return hash, nil
}

func (s *Store) commitAt(ref domain.Ref) (*object.Commit, error) {
	hash, err := s.resolve(string(ref))
	if err != nil {
		return nil, err
	}
	commit, err := s.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", ref, err)
	}
	return commit, nil
}
