package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ryan-williams/watchy/domain"
)

func TestFormatCommitMessage(t *testing.T) {
	t.Parallel()

	t.Run("should report no changes for an empty set", func(t *testing.T) {
		t.Parallel()

		// when
		message := domain.FormatCommitMessage(domain.NewChangeSet())

		// then
		assert.Equal(t, "GHA: No changes detected", message)
	})

	t.Run("should render star additions with a sorted detail line", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.Record(domain.Classify("github/stars/o/r.txt"), domain.NewNameSet("bob", "alice"), domain.NameSet{})

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		assert.Equal(t, "GHA: ⭐️+2\n\n- ⭐️ o/r: +alice, bob", message)
	})

	t.Run("should concatenate plus and minus counts in one token", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.Record(domain.Classify("github/follows/u.txt"), domain.NewNameSet("f1"), domain.NewNameSet("f2"))

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		assert.Equal(t, "GHA: 📣+1-1\n\n- 📣 u: +f1, -f2", message)
	})

	t.Run("should summarize new snapshot files by classified key", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.RecordNewPath("root/github/stars/o/r.txt")

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		assert.Equal(t, "GHA: 📂+1\n\n- 📂 +o/r", message)
	})

	t.Run("should count unclassified new paths but omit them from the detail line", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.RecordNewPath("notes/scratch.txt")

		// when
		message := domain.FormatCommitMessage(cs)

		// then the header counts the file, but with no classifiable key there
		// is no detail line at all
		assert.Equal(t, "GHA: 📂+1", message)
	})

	t.Run("should order tokens follows, stars, new files", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.Record(domain.Classify("github/stars/o/r.txt"), domain.NewNameSet("s1"), domain.NameSet{})
		cs.Record(domain.Classify("github/follows/u.txt"), domain.NewNameSet("f1"), domain.NameSet{})
		cs.RecordNewPath("github/follows/w.txt")

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		expected := "GHA: 📣+1, ⭐️+1, 📂+1\n\n" +
			"- 📣 u: +f1\n" +
			"- ⭐️ o/r: +s1\n" +
			"- 📂 +w"
		assert.Equal(t, expected, message)
	})

	t.Run("should sort entities and their new-path keys lexicographically", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.Record(domain.Classify("github/stars/z/late.txt"), domain.NewNameSet("u1"), domain.NameSet{})
		cs.Record(domain.Classify("github/stars/a/early.txt"), domain.NameSet{}, domain.NewNameSet("u2"))
		cs.RecordNewPath("github/stars/m/mid.txt")
		cs.RecordNewPath("github/follows/b.txt")

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		expected := "GHA: ⭐️+1-1, 📂+2\n\n" +
			"- ⭐️ a/early: -u2\n" +
			"- ⭐️ z/late: +u1\n" +
			"- 📂 +b, m/mid"
		assert.Equal(t, expected, message)
	})

	t.Run("should fall back when the set is non-empty but all totals are zero", func(t *testing.T) {
		t.Parallel()

		// given a map entry holding an empty set, which Record never produces
		cs := domain.NewChangeSet()
		cs.StarsAdded["o/r"] = domain.NameSet{}

		// when
		message := domain.FormatCommitMessage(cs)

		// then
		assert.Equal(t, "GHA: No significant changes", message)
	})

	t.Run("should produce byte-identical output across repeated calls", func(t *testing.T) {
		t.Parallel()

		// given
		cs := domain.NewChangeSet()
		cs.Record(domain.Classify("github/stars/o/r.txt"), domain.NewNameSet("c", "a", "b"), domain.NewNameSet("x", "y"))
		cs.Record(domain.Classify("github/follows/u.txt"), domain.NewNameSet("f2", "f1"), domain.NameSet{})
		cs.RecordNewPath("github/stars/n/new.txt")
		cs.RecordNewPath("github/follows/m.txt")

		// when
		first := domain.FormatCommitMessage(cs)

		// then
		for range 10 {
			assert.Equal(t, first, domain.FormatCommitMessage(cs))
		}
	})
}
