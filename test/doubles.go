// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"iter"

	"github.com/ryan-williams/watchy/domain"
)

// ---------------------------------------------------------------------------
// SpyClient
// ---------------------------------------------------------------------------

// SpyClient implements domain.Client as a configurable spy. Configure the
// response maps for the methods your test exercises, then inspect the call
// slices to verify behavior. A non-nil Err is yielded as the final sequence
// element, mimicking a failed page fetch.
type SpyClient struct {
	StargazersByRepo map[string][]string // "owner/repo" -> logins
	FollowersByUser  map[string][]string
	ReposByUser      map[string][]string
	Err              error

	// spy: requested targets
	StargazerCalls  []string
	FollowerCalls   []string
	RepositoryCalls []string
}

func (c *SpyClient) Stargazers(_ context.Context, owner, repo string) iter.Seq2[domain.User, error] {
	key := owner + "/" + repo
	c.StargazerCalls = append(c.StargazerCalls, key)
	return userSeq(c.StargazersByRepo[key], c.Err)
}

func (c *SpyClient) Followers(_ context.Context, user string) iter.Seq2[domain.User, error] {
	c.FollowerCalls = append(c.FollowerCalls, user)
	return userSeq(c.FollowersByUser[user], c.Err)
}

func (c *SpyClient) Repositories(_ context.Context, user string) iter.Seq2[domain.Repo, error] {
	c.RepositoryCalls = append(c.RepositoryCalls, user)
	names := c.ReposByUser[user]
	err := c.Err
	return func(yield func(domain.Repo, error) bool) {
		for _, name := range names {
			if !yield(domain.Repo{Name: name}, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.Repo{}, err)
		}
	}
}

func userSeq(logins []string, err error) iter.Seq2[domain.User, error] {
	return func(yield func(domain.User, error) bool) {
		for _, login := range logins {
			if !yield(domain.User{Login: login}, nil) {
				return
			}
		}
		if err != nil {
			yield(domain.User{}, err)
		}
	}
}

// ---------------------------------------------------------------------------
// SpyStore
// ---------------------------------------------------------------------------

// SpyStore implements domain.Store as a configurable spy over canned history.
// Contents maps ref -> path -> content; use domain.Worktree as the ref key for
// working-tree content. Missing entries report "absent", like the real store.
type SpyStore struct {
	Worktree    domain.PathChanges
	WorktreeErr error

	Commits  []domain.Ref // returned by CommitsInRange, oldest first
	RangeErr error

	Parents  map[domain.Ref]domain.Ref
	Changed  map[domain.Ref]domain.PathChanges
	Contents map[domain.Ref]map[string]string

	ContentErr error

	HasChanges    bool
	HasChangesErr error
	CommitErr     error
	AmendErr      error

	// spy: calls received
	RangeSpecs []string
	Committed  []string
	Amended    []string
}

func (s *SpyStore) WorktreeChanges() (domain.PathChanges, error) {
	return s.Worktree, s.WorktreeErr
}

func (s *SpyStore) CommitsInRange(spec string) ([]domain.Ref, error) {
	s.RangeSpecs = append(s.RangeSpecs, spec)
	if s.RangeErr != nil {
		return nil, s.RangeErr
	}
	return s.Commits, nil
}

func (s *SpyStore) Parent(ref domain.Ref) (domain.Ref, bool, error) {
	parent, ok := s.Parents[ref]
	return parent, ok, nil
}

func (s *SpyStore) ChangedPaths(_, ref domain.Ref) (domain.PathChanges, error) {
	return s.Changed[ref], nil
}

func (s *SpyStore) ContentAt(path string, ref domain.Ref) ([]byte, bool, error) {
	if s.ContentErr != nil {
		return nil, false, s.ContentErr
	}
	files, ok := s.Contents[ref]
	if !ok {
		return nil, false, nil
	}
	content, ok := files[path]
	if !ok {
		return nil, false, nil
	}
	return []byte(content), true, nil
}

func (s *SpyStore) HasChangesToCommit() (bool, error) {
	return s.HasChanges, s.HasChangesErr
}

func (s *SpyStore) StageAndCommit(message string) error {
	if s.CommitErr != nil {
		return s.CommitErr
	}
	s.Committed = append(s.Committed, message)
	return nil
}

func (s *SpyStore) AmendLastMessage(message string) error {
	if s.AmendErr != nil {
		return s.AmendErr
	}
	s.Amended = append(s.Amended, message)
	return nil
}

// ---------------------------------------------------------------------------
// SpySink
// ---------------------------------------------------------------------------

// SpySink implements domain.Sink, recording every write.
type SpySink struct {
	Written map[string]domain.NameSet
	Err     error
}

func (s *SpySink) WriteNames(path string, names domain.NameSet) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Written == nil {
		s.Written = map[string]domain.NameSet{}
	}
	s.Written[path] = names
	return nil
}
