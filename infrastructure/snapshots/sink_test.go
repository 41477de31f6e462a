package snapshots_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryan-williams/watchy/domain"
	"github.com/ryan-williams/watchy/infrastructure/snapshots"
)

func TestSink_WriteNames(t *testing.T) {
	t.Parallel()

	t.Run("should write sorted logins one per line with a trailing newline", func(t *testing.T) {
		t.Parallel()

		// given
		sink := snapshots.NewSink()
		path := filepath.Join(t.TempDir(), "github", "stars", "o", "r.txt")
		names := domain.NewNameSet("bob", "alice", "carol")

		// when
		err := sink.WriteNames(path, names)

		// then parent directories were created too
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "alice\nbob\ncarol\n", string(data))
	})

	t.Run("should overwrite an existing snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		sink := snapshots.NewSink()
		path := filepath.Join(t.TempDir(), "u.txt")
		require.NoError(t, sink.WriteNames(path, domain.NewNameSet("old-follower")))

		// when
		err := sink.WriteNames(path, domain.NewNameSet("new-follower"))

		// then
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new-follower\n", string(data))
	})

	t.Run("should write an empty file for an empty set", func(t *testing.T) {
		t.Parallel()

		// given
		sink := snapshots.NewSink()
		path := filepath.Join(t.TempDir(), "u.txt")

		// when
		err := sink.WriteNames(path, domain.NewNameSet())

		// then an account with zero followers still gets a snapshot
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)
	})
}
