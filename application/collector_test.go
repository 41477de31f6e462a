package application_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryan-williams/watchy/application"
	"github.com/ryan-williams/watchy/domain"
	testdoubles "github.com/ryan-williams/watchy/test"
)

func TestCollector_WorkingTree(t *testing.T) {
	t.Parallel()

	t.Run("should diff modified snapshots between HEAD and the worktree", func(t *testing.T) {
		t.Parallel()

		// given
		store := &testdoubles.SpyStore{
			Worktree: domain.PathChanges{
				Modified: []string{"github/stars/o/r.txt"},
			},
			Contents: map[domain.Ref]map[string]string{
				domain.Head:     {"github/stars/o/r.txt": "alice\nbob\n"},
				domain.Worktree: {"github/stars/o/r.txt": "bob\ncarol\n"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.WorkingTree()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"carol"}, cs.StarsAdded["o/r"].Sorted())
		assert.Equal(t, []string{"alice"}, cs.StarsRemoved["o/r"].Sorted())
	})

	t.Run("should record every new path raw, including unclassified ones", func(t *testing.T) {
		t.Parallel()

		// given
		store := &testdoubles.SpyStore{
			Worktree: domain.PathChanges{
				Added: []string{"github/stars/o/r.txt", "unexpected.bin"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.WorkingTree()

		// then
		require.NoError(t, err)
		assert.Contains(t, cs.NewPaths, "github/stars/o/r.txt")
		assert.Contains(t, cs.NewPaths, "unexpected.bin")
	})

	t.Run("should skip modified paths that are not snapshots", func(t *testing.T) {
		t.Parallel()

		// given
		store := &testdoubles.SpyStore{
			Worktree: domain.PathChanges{
				Modified: []string{"README.md", "notes/random.txt"},
			},
			Contents: map[domain.Ref]map[string]string{
				domain.Head:     {"notes/random.txt": "alice\n"},
				domain.Worktree: {"notes/random.txt": "bob\n"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.WorkingTree()

		// then unclassified and non-txt paths contribute nothing
		require.NoError(t, err)
		assert.True(t, cs.Empty())
	})

	t.Run("should treat a snapshot missing at HEAD as all-added", func(t *testing.T) {
		t.Parallel()

		// given a file modified in the worktree but absent from HEAD
		store := &testdoubles.SpyStore{
			Worktree: domain.PathChanges{
				Modified: []string{"github/follows/u.txt"},
			},
			Contents: map[domain.Ref]map[string]string{
				domain.Worktree: {"github/follows/u.txt": "f1\n"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.WorkingTree()

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"f1"}, cs.FollowsAdded["u"].Sorted())
		assert.Empty(t, cs.FollowsRemoved)
	})

	t.Run("should abort the pass on a store failure", func(t *testing.T) {
		t.Parallel()

		// given
		storeErr := errors.New("index locked")
		collector := application.NewCollector(&testdoubles.SpyStore{WorktreeErr: storeErr})

		// when
		_, err := collector.WorkingTree()

		// then
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestCollector_Range(t *testing.T) {
	t.Parallel()

	t.Run("should diff each point against its first parent, oldest first", func(t *testing.T) {
		t.Parallel()

		// given three points where a star flips on and off again
		path := "github/stars/o/r.txt"
		store := &testdoubles.SpyStore{
			Commits: []domain.Ref{"c1", "c2", "c3"},
			Parents: map[domain.Ref]domain.Ref{"c2": "c1", "c3": "c2"},
			Changed: map[domain.Ref]domain.PathChanges{
				"c1": {Added: []string{path}},
				"c2": {Modified: []string{path}},
				"c3": {Modified: []string{path}},
			},
			Contents: map[domain.Ref]map[string]string{
				"c1": {path: "alice\n"},
				"c2": {path: "alice\nbob\n"},
				"c3": {path: "alice\n"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.Range("c1..c3")

		// then each step diffs against its immediate predecessor, so bob shows
		// up on both sides without double counting
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, cs.StarsAdded["o/r"].Sorted())
		assert.Equal(t, []string{"bob"}, cs.StarsRemoved["o/r"].Sorted())
		assert.Contains(t, cs.NewPaths, path)
		assert.Equal(t, []string{"c1..c3"}, store.RangeSpecs)
	})

	t.Run("should compare a root point against an empty baseline", func(t *testing.T) {
		t.Parallel()

		// given a single root commit introducing a modified-looking snapshot
		path := "github/follows/u.txt"
		store := &testdoubles.SpyStore{
			Commits: []domain.Ref{"root"},
			Changed: map[domain.Ref]domain.PathChanges{
				"root": {Modified: []string{path}},
			},
			Contents: map[domain.Ref]map[string]string{
				"root": {path: "f1\nf2\n"},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.Range("root")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"f1", "f2"}, cs.FollowsAdded["u"].Sorted())
		assert.Empty(t, cs.FollowsRemoved)
	})

	t.Run("should only record new files that are snapshot files", func(t *testing.T) {
		t.Parallel()

		// given
		store := &testdoubles.SpyStore{
			Commits: []domain.Ref{"c1"},
			Changed: map[domain.Ref]domain.PathChanges{
				"c1": {Added: []string{"github/stars/o/r.txt", "README.md"}},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.Range("c1")

		// then
		require.NoError(t, err)
		assert.Contains(t, cs.NewPaths, "github/stars/o/r.txt")
		assert.NotContains(t, cs.NewPaths, "README.md")
	})

	t.Run("should aggregate changes across entities in one pass", func(t *testing.T) {
		t.Parallel()

		// given one point touching a stars file and a follows file
		starsPath := "github/stars/o/r.txt"
		followsPath := "github/follows/u.txt"
		store := &testdoubles.SpyStore{
			Commits: []domain.Ref{"c2"},
			Parents: map[domain.Ref]domain.Ref{"c2": "c1"},
			Changed: map[domain.Ref]domain.PathChanges{
				"c2": {Modified: []string{starsPath, followsPath}},
			},
			Contents: map[domain.Ref]map[string]string{
				"c1": {starsPath: "alice\n", followsPath: "f1\n"},
				"c2": {starsPath: "alice\nbob\n", followsPath: ""},
			},
		}
		collector := application.NewCollector(store)

		// when
		cs, err := collector.Range("c2")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, cs.StarsAdded["o/r"].Sorted())
		assert.Equal(t, []string{"f1"}, cs.FollowsRemoved["u"].Sorted())
	})

	t.Run("should surface resolution failures", func(t *testing.T) {
		t.Parallel()

		// given
		rangeErr := errors.New("unknown revision")
		collector := application.NewCollector(&testdoubles.SpyStore{RangeErr: rangeErr})

		// when
		_, err := collector.Range("nope..nope")

		// then
		assert.ErrorIs(t, err, rangeErr)
	})
}
