package cmd

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ryan-williams/watchy/application"
	"github.com/ryan-williams/watchy/config"
	"github.com/ryan-williams/watchy/domain"
	"github.com/ryan-williams/watchy/infrastructure/github"
	"github.com/ryan-williams/watchy/infrastructure/snapshots"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	tokenFlag string
	verbose   bool
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var rootCmd = &cobra.Command{
	Use:   "watchy",
	Short: "Track GitHub stargazers and followers",
	Long: `Watchy polls the GitHub social graph and records who stars your
repositories and who follows your account, one login per line, in plain text
snapshots inside a git-tracked directory.

Re-running the fetch commands rewrites the snapshots in place; committing the
directory afterwards builds an incremental history, and 'watchy commit' turns
the diffs between snapshots into readable commit messages.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.PersistentFlags().StringVarP(&tokenFlag, "token", "t", "",
		"GitHub API token (overrides auto-detection)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// newTrackService builds the fetch-and-persist service from configuration.
func newTrackService() (*application.TrackService, *config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	token := github.ResolveToken(tokenFlag, cfg.Token)
	if token == "" {
		logger.Debug("No GitHub token found, using unauthenticated client")
	}

	svc := application.NewTrackService(
		github.NewClient(token),
		snapshots.NewSink(),
		domain.NewLayout(cfg.Root),
		os.Stdout,
	)
	return svc, cfg, nil
}
