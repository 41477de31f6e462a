package domain

import (
	"path/filepath"
	"strings"
)

// SnapshotExt is the file extension shared by all snapshot files.
const SnapshotExt = ".txt"

// Kind distinguishes the two tracked entity shapes a snapshot path can take.
type Kind int

const (
	// KindUnclassified marks a path that is not a recognized snapshot shape.
	KindUnclassified Kind = iota
	// KindRepoStars marks a repository stargazer list (.../stars/<owner>/<repo>.txt).
	KindRepoStars
	// KindUserFollows marks a user follower list (.../follows/<user>.txt).
	KindUserFollows
)

// SnapshotPath is the classified form of a snapshot file path.
// Owner and Repo are set for KindRepoStars, User for KindUserFollows.
type SnapshotPath struct {
	Kind  Kind
	Owner string
	Repo  string
	User  string
}

// RepoKey returns the "owner/repo" key for a KindRepoStars path.
func (p SnapshotPath) RepoKey() string {
	return p.Owner + "/" + p.Repo
}

// Classify determines what a snapshot path tracks from the path string alone.
// The match is on the path's tail, so any directory prefix is tolerated.
// Stars take priority over follows; anything else is unclassified.
// Classify never fails: malformed input yields KindUnclassified.
func Classify(path string) SnapshotPath {
	segments := strings.Split(filepath.ToSlash(path), "/")
	n := len(segments)

	if n >= 3 && segments[n-3] == "stars" {
		owner := segments[n-2]
		repo := strings.TrimSuffix(segments[n-1], SnapshotExt)
		if owner != "" && repo != "" && strings.HasSuffix(segments[n-1], SnapshotExt) {
			return SnapshotPath{Kind: KindRepoStars, Owner: owner, Repo: repo}
		}
	}

	if n >= 2 && segments[n-2] == "follows" {
		user := strings.TrimSuffix(segments[n-1], SnapshotExt)
		if user != "" && strings.HasSuffix(segments[n-1], SnapshotExt) {
			return SnapshotPath{Kind: KindUserFollows, User: user}
		}
	}

	return SnapshotPath{Kind: KindUnclassified}
}

// Layout maps tracked entities to snapshot file locations under a root
// directory. The root comes from configuration and is threaded in explicitly.
type Layout struct {
	root string
}

// NewLayout creates a layout rooted at the given directory.
func NewLayout(root string) Layout {
	return Layout{root: root}
}

// Root returns the layout's root directory.
func (l Layout) Root() string { return l.root }

// StarsFile returns the snapshot path for a repository's stargazer list.
func (l Layout) StarsFile(owner, repo string) string {
	return filepath.Join(l.root, "github", "stars", owner, repo+SnapshotExt)
}

// FollowsFile returns the snapshot path for a user's follower list.
func (l Layout) FollowsFile(user string) string {
	return filepath.Join(l.root, "github", "follows", user+SnapshotExt)
}
