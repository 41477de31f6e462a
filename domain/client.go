package domain

import (
	"context"
	"iter"
)

// User is a GitHub account observed in the social graph.
type User struct {
	Login string
}

// Repo is a repository owned by a tracked account.
type Repo struct {
	Name string
}

// Client abstracts the GitHub social-graph API. Each method returns a lazy,
// finite, non-restartable sequence: pages are fetched on demand and the
// consumer may stop early without forcing full pagination. A failed request
// surfaces as the sequence's final element.
type Client interface {
	// Stargazers yields the logins that starred owner/repo.
	Stargazers(ctx context.Context, owner, repo string) iter.Seq2[User, error]

	// Followers yields the logins following a user or organization.
	Followers(ctx context.Context, user string) iter.Seq2[User, error]

	// Repositories yields the repositories owned by a user or organization.
	Repositories(ctx context.Context, user string) iter.Seq2[Repo, error]
}
