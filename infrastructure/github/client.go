// Package github implements the social-graph client against the GitHub REST
// API, with lazy pagination and rate-limit recovery.
package github

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/ryan-williams/watchy/domain"
)

const (
	perPage = 100

	// minRateLimitSleep floors the recovery sleep so a skewed clock never
	// turns it into a hot retry loop.
	minRateLimitSleep = 60 * time.Second
)

// Client is the go-github backed implementation of domain.Client.
type Client struct {
	gh    *gh.Client
	sleep func(time.Duration)
}

// NewClient creates a client. An empty token yields an unauthenticated client
// with GitHub's lower anonymous rate limits.
func NewClient(token string) *Client {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Client{gh: client, sleep: time.Sleep}
}

// Stargazers yields the logins that starred owner/repo, page by page.
func (c *Client) Stargazers(ctx context.Context, owner, repo string) iter.Seq2[domain.User, error] {
	return func(yield func(domain.User, error) bool) {
		opts := &gh.ListOptions{PerPage: perPage}
		for {
			gazers, resp, err := c.gh.Activity.ListStargazers(ctx, owner, repo, opts)
			if err != nil {
				if c.waitForRateLimit(err) {
					continue
				}
				yield(domain.User{}, fmt.Errorf("failed to list stargazers for %s/%s: %w", owner, repo, err))
				return
			}
			for _, gazer := range gazers {
				if !yield(domain.User{Login: gazer.GetUser().GetLogin()}, nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// Followers yields the logins following a user or organization.
func (c *Client) Followers(ctx context.Context, user string) iter.Seq2[domain.User, error] {
	return func(yield func(domain.User, error) bool) {
		opts := &gh.ListOptions{PerPage: perPage}
		for {
			followers, resp, err := c.gh.Users.ListFollowers(ctx, user, opts)
			if err != nil {
				if c.waitForRateLimit(err) {
					continue
				}
				yield(domain.User{}, fmt.Errorf("failed to list followers for %q: %w", user, err))
				return
			}
			for _, follower := range followers {
				if !yield(domain.User{Login: follower.GetLogin()}, nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// Repositories yields the repositories owned by a user or organization.
func (c *Client) Repositories(ctx context.Context, user string) iter.Seq2[domain.Repo, error] {
	return func(yield func(domain.Repo, error) bool) {
		opts := &gh.RepositoryListByUserOptions{
			Type:        "owner",
			ListOptions: gh.ListOptions{PerPage: perPage},
		}
		for {
			repos, resp, err := c.gh.Repositories.ListByUser(ctx, user, opts)
			if err != nil {
				if c.waitForRateLimit(err) {
					continue
				}
				yield(domain.Repo{}, fmt.Errorf("failed to list repositories for %q: %w", user, err))
				return
			}
			for _, repo := range repos {
				if !yield(domain.Repo{Name: repo.GetName()}, nil) {
					return
				}
			}
			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// waitForRateLimit sleeps until the server-signaled reset when err is a rate
// limit, returning true so the caller retries the same request. Any other
// error returns false.
func (c *Client) waitForRateLimit(err error) bool {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		wait := time.Until(rateErr.Rate.Reset.Time) + time.Second
		if wait < minRateLimitSleep {
			wait = minRateLimitSleep
		}
		logger.Warnf("Rate limited, sleeping %s until reset", wait.Round(time.Second))
		c.sleep(wait)
		return true
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		wait := abuseErr.GetRetryAfter()
		if wait < minRateLimitSleep {
			wait = minRateLimitSleep
		}
		logger.Warnf("Secondary rate limit hit, sleeping %s", wait.Round(time.Second))
		c.sleep(wait)
		return true
	}

	return false
}
