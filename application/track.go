package application

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"time"

	"github.com/TwiN/go-color"
	logger "github.com/sirupsen/logrus"

	"github.com/ryan-williams/watchy/domain"
)

// printLimit caps how many logins are echoed to stdout per target.
const printLimit = 10

// TrackService fetches the current social graph for a set of targets and
// persists each entity's login list as a snapshot file.
type TrackService struct {
	client domain.Client
	sink   domain.Sink
	layout domain.Layout
	out    io.Writer
}

// NewTrackService wires a track service from its collaborators.
func NewTrackService(client domain.Client, sink domain.Sink, layout domain.Layout, out io.Writer) *TrackService {
	return &TrackService{client: client, sink: sink, layout: layout, out: out}
}

// Stars records stargazers for each target. An "owner/repo" target fetches a
// single repository; a bare "user" target enumerates every repository the
// account owns and fetches each, sleeping between fetches to stay polite.
func (s *TrackService) Stars(ctx context.Context, targets []string, sleep time.Duration) error {
	for _, target := range targets {
		if owner, repo, ok := strings.Cut(target, "/"); ok {
			if err := s.trackRepo(ctx, owner, repo); err != nil {
				return err
			}
			continue
		}

		repos, err := s.collectRepos(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to list repositories for %q: %w", target, err)
		}
		if len(repos) == 0 {
			logger.Warnf("No repositories found for user/org: %s", target)
			continue
		}

		for i, repo := range repos {
			if err := s.trackRepo(ctx, target, repo); err != nil {
				return err
			}
			if i < len(repos)-1 && sleep > 0 {
				time.Sleep(sleep)
			}
		}
	}
	return nil
}

// Follows records followers for each target user or organization.
func (s *TrackService) Follows(ctx context.Context, targets []string) error {
	for _, user := range targets {
		names, err := collectUsers(s.client.Followers(ctx, user))
		if err != nil {
			return fmt.Errorf("failed to fetch followers for %q: %w", user, err)
		}

		logger.Infof("%d followers for %s", names.Len(), user)

		path := s.layout.FollowsFile(user)
		if writeErr := s.sink.WriteNames(path, names); writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", path, writeErr)
		}
		s.printLogins(names.Sorted())
	}
	return nil
}

func (s *TrackService) trackRepo(ctx context.Context, owner, repo string) error {
	names, err := collectUsers(s.client.Stargazers(ctx, owner, repo))
	if err != nil {
		return fmt.Errorf("failed to fetch stargazers for %s/%s: %w", owner, repo, err)
	}

	logger.Infof("%d stargazers for %s/%s", names.Len(), owner, repo)

	path := s.layout.StarsFile(owner, repo)
	if writeErr := s.sink.WriteNames(path, names); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	s.printLogins(names.Sorted())
	return nil
}

func (s *TrackService) collectRepos(ctx context.Context, user string) ([]string, error) {
	var repos []string
	for repo, err := range s.client.Repositories(ctx, user) {
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo.Name)
	}
	return repos, nil
}

func (s *TrackService) printLogins(logins []string) {
	for i, login := range logins {
		if i == printLimit {
			remaining := len(logins) - printLimit
			fmt.Fprintln(s.out, color.Ize(color.Gray, fmt.Sprintf("... and %d more", remaining)))
			return
		}
		fmt.Fprintln(s.out, login)
	}
}

func collectUsers(seq iter.Seq2[domain.User, error]) (domain.NameSet, error) {
	names := domain.NameSet{}
	for user, err := range seq {
		if err != nil {
			return nil, err
		}
		names.Add(user.Login)
	}
	return names, nil
}
