package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ryan-williams/watchy/application"
	"github.com/ryan-williams/watchy/config"
	"github.com/ryan-williams/watchy/domain"
	"github.com/ryan-williams/watchy/infrastructure/gitstore"
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var (
	commitDryRun bool
	commitFixup  bool
	commitRef    string
)

//nolint:gochecknoglobals // required by cobra CLI pattern
var commitCmd = &cobra.Command{
	Use:   "commit [range]",
	Short: "Create a commit whose message summarizes snapshot changes",
	Long: `Generate a commit message from snapshot diffs and commit them.

By default, analyzes uncommitted changes left by 'watchy stars' and
'watchy follows' and commits them. If RANGE is given, analyzes those historical
commits instead and only prints the message.

RANGE can be:
- a single commit: HEAD, abc123, HEAD~3
- a range: HEAD~3..HEAD, main..feature-branch

The message shows:
- 📣 follow additions/removals by user
- ⭐️ star additions/removals by repository
- 📂 newly tracked repositories and users

Use --dry-run to preview the message without committing.
Use --fixup to rewrite the last commit's message from its own changes.
Use -r/--ref REF as shorthand for analyzing a single commit (REF^..REF).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		store, err := gitstore.Open(cfg.Root)
		if err != nil {
			if errors.Is(err, domain.ErrNotARepository) {
				return fmt.Errorf("%s is not a git repository", cfg.Root)
			}
			return err
		}

		svc := application.NewCommitService(application.NewCollector(store), store, os.Stdout)

		var rangeSpec string
		if len(args) == 1 {
			rangeSpec = args[0]
		}
		return svc.Run(application.CommitOptions{
			RangeSpec: rangeSpec,
			Ref:       commitRef,
			Fixup:     commitFixup,
			DryRun:    commitDryRun,
		})
	},
}

//nolint:gochecknoinits // required by cobra CLI pattern
func init() {
	commitCmd.Flags().BoolVarP(&commitDryRun, "dry-run", "n", false,
		"Show what would be committed without actually committing")
	commitCmd.Flags().BoolVar(&commitFixup, "fixup", false,
		"Amend the last commit with a new message based on its changes")
	commitCmd.Flags().StringVarP(&commitRef, "ref", "r", "",
		"Shorthand for analyzing a single commit (equivalent to REF^..REF)")
	rootCmd.AddCommand(commitCmd)
}
