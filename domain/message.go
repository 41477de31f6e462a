package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	messagePrefix = "GHA: "
	followsEmoji  = "📣"
	starsEmoji    = "⭐️"
	newFilesEmoji = "📂"

	// NoChangesMessage is returned for a completely empty ChangeSet.
	NoChangesMessage = "GHA: No changes detected"
	// NoSignificantChangesMessage is the defensive fallback when the set is
	// non-empty but every summary token comes out zero.
	NoSignificantChangesMessage = "GHA: No significant changes"
)

// FormatCommitMessage renders a ChangeSet into a commit message: a one-line
// summary of follow, star, and new-file totals, then per-entity detail lines.
// Output is deterministic — every ordering is an explicit sort.
func FormatCommitMessage(cs *ChangeSet) string {
	if cs.Empty() {
		return NoChangesMessage
	}

	var tokens []string
	if tok := deltaToken(followsEmoji, totalNames(cs.FollowsAdded), totalNames(cs.FollowsRemoved)); tok != "" {
		tokens = append(tokens, tok)
	}
	if tok := deltaToken(starsEmoji, totalNames(cs.StarsAdded), totalNames(cs.StarsRemoved)); tok != "" {
		tokens = append(tokens, tok)
	}
	if n := len(cs.NewPaths); n > 0 {
		tokens = append(tokens, fmt.Sprintf("%s+%d", newFilesEmoji, n))
	}
	if len(tokens) == 0 {
		return NoSignificantChangesMessage
	}
	summary := messagePrefix + strings.Join(tokens, ", ")

	var details []string
	details = append(details, entityLines(followsEmoji, cs.FollowsAdded, cs.FollowsRemoved)...)
	details = append(details, entityLines(starsEmoji, cs.StarsAdded, cs.StarsRemoved)...)
	if line := newPathsLine(cs.NewPaths); line != "" {
		details = append(details, line)
	}

	if len(details) == 0 {
		return summary
	}
	return summary + "\n\n" + strings.Join(details, "\n")
}

// deltaToken renders "<emoji>+A-R", omitting the zero parts; empty when both
// counts are zero.
func deltaToken(emoji string, added, removed int) string {
	if added == 0 && removed == 0 {
		return ""
	}
	token := emoji
	if added > 0 {
		token += fmt.Sprintf("+%d", added)
	}
	if removed > 0 {
		token += fmt.Sprintf("-%d", removed)
	}
	return token
}

func totalNames(m map[string]NameSet) int {
	return lo.SumBy(lo.Values(m), func(s NameSet) int { return s.Len() })
}

// entityLines renders one "- <emoji> <key>: +a, b, -c" line per entity that
// has any added or removed names, sorted by key.
func entityLines(emoji string, added, removed map[string]NameSet) []string {
	keys := lo.Uniq(append(lo.Keys(added), lo.Keys(removed)...))
	sort.Strings(keys)

	var lines []string
	for _, key := range keys {
		var parts []string
		if set := added[key]; set.Len() > 0 {
			parts = append(parts, "+"+strings.Join(set.Sorted(), ", "))
		}
		if set := removed[key]; set.Len() > 0 {
			parts = append(parts, "-"+strings.Join(set.Sorted(), ", "))
		}
		if len(parts) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s %s: %s", emoji, key, strings.Join(parts, ", ")))
	}
	return lines
}

// newPathsLine summarizes newly tracked entities by their classified keys.
// Unclassified paths count toward the summary token but are skipped here.
func newPathsLine(paths map[string]struct{}) string {
	var keys []string
	for path := range paths {
		switch sp := Classify(path); sp.Kind {
		case KindRepoStars:
			keys = append(keys, sp.RepoKey())
		case KindUserFollows:
			keys = append(keys, sp.User)
		case KindUnclassified:
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return fmt.Sprintf("- %s +%s", newFilesEmoji, strings.Join(keys, ", "))
}
