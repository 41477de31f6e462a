package cmd

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var followsCmd = &cobra.Command{
	Use:   "follows <target>...",
	Short: "Fetch followers for users or organizations",
	Long: `Fetch followers and save them as snapshots under the watchy root.

TARGETS are GitHub usernames or organization names. Snapshots land in
<root>/github/follows/<user>.txt and the usernames are echoed to stdout.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newTrackService()
		if err != nil {
			return err
		}
		return svc.Follows(cmd.Context(), args)
	},
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	rootCmd.AddCommand(followsCmd)
}
