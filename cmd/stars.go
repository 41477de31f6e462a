package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var sleepS float64

//nolint:gochecknoglobals // required by cobra CLI pattern
var starsCmd = &cobra.Command{
	Use:   "stars <target>...",
	Short: "Fetch stargazers for repositories or all repositories of users/orgs",
	Long: `Fetch stargazers and save them as snapshots under the watchy root.

TARGETS can be:
- 'owner/repo' for a specific repository
- 'user' or 'org' to fetch stars for every repository the account owns

Snapshots land in <root>/github/stars/<owner>/<repo>.txt and the usernames are
echoed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cfg, err := newTrackService()
		if err != nil {
			return err
		}

		sleep := cfg.SleepDuration()
		if cmd.Flags().Changed("sleep-s") {
			sleep = time.Duration(sleepS * float64(time.Second))
		}
		return svc.Stars(cmd.Context(), args, sleep)
	},
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	starsCmd.Flags().Float64VarP(&sleepS, "sleep-s", "s", 0.1,
		"Sleep seconds between repo fetches")
	rootCmd.AddCommand(starsCmd)
}
