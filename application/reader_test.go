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

func TestSnapshotReader(t *testing.T) {
	t.Parallel()

	t.Run("should parse snapshot content at a ref", func(t *testing.T) {
		t.Parallel()

		// given
		store := &testdoubles.SpyStore{
			Contents: map[domain.Ref]map[string]string{
				"abc": {"github/stars/o/r.txt": "alice\nbob\n"},
			},
		}
		reader := application.NewSnapshotReader(store)

		// when
		names, err := reader.ReadNames("github/stars/o/r.txt", "abc")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, names.Sorted())
	})

	t.Run("should collapse an absent path to an empty set", func(t *testing.T) {
		t.Parallel()

		// given
		reader := application.NewSnapshotReader(&testdoubles.SpyStore{})

		// when
		names, err := reader.ReadNames("github/stars/o/r.txt", "abc")

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, names.Len())
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		t.Parallel()

		// given
		storeErr := errors.New("object database corrupted")
		reader := application.NewSnapshotReader(&testdoubles.SpyStore{ContentErr: storeErr})

		// when
		_, err := reader.ReadNames("github/stars/o/r.txt", "abc")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)
	})
}
