package application

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/ryan-williams/watchy/domain"
)

// ErrConflictingModes is returned when more than one commit-selection mode is
// supplied in a single invocation.
var ErrConflictingModes = errors.New("cannot use multiple commit specification options together")

const previewRuleWidth = 50

// CommitOptions selects which changes to analyze and what to do with the
// resulting message. RangeSpec, Ref, and Fixup are mutually exclusive; none of
// them means working-tree mode.
type CommitOptions struct {
	RangeSpec string // positional "ref" or "start..end" argument
	Ref       string // -r shorthand, expanded to REF^..REF
	Fixup     bool   // recompute and amend HEAD's message
	DryRun    bool   // preview only, no side effects
}

// CommitService decides which collection mode to run, formats the resulting
// ChangeSet, and either previews the message or materializes it as a commit.
type CommitService struct {
	collector *Collector
	store     domain.Store
	out       io.Writer
}

// NewCommitService creates the orchestrator over a collector and its store.
func NewCommitService(collector *Collector, store domain.Store, out io.Writer) *CommitService {
	return &CommitService{collector: collector, store: store, out: out}
}

// Run executes one commit invocation. Inspecting an explicit ref or range
// (without --fixup) and dry runs only print the message; otherwise the service
// stages and commits the working tree, or amends HEAD in fixup mode. A clean
// working tree is an informational no-op, not an error.
func (s *CommitService) Run(opts CommitOptions) error {
	modes := 0
	for _, set := range []bool{opts.RangeSpec != "", opts.Ref != "", opts.Fixup} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return ErrConflictingModes
	}

	spec := opts.RangeSpec
	switch {
	case opts.Fixup:
		spec = "HEAD"
	case opts.Ref != "":
		spec = opts.Ref + "^.." + opts.Ref
	}

	var (
		cs  *domain.ChangeSet
		err error
	)
	if spec == "" {
		cs, err = s.collector.WorkingTree()
	} else {
		cs, err = s.collector.Range(spec)
	}
	if err != nil {
		return err
	}

	message := domain.FormatCommitMessage(cs)

	inspecting := spec != "" && !opts.Fixup
	if inspecting || opts.DryRun {
		if spec != "" {
			fmt.Fprintf(s.out, "Commit message for %s:\n", spec)
		} else {
			fmt.Fprintln(s.out, "Commit message preview:")
		}
		s.printFramed(message)
		return nil
	}

	if opts.Fixup {
		if amendErr := s.store.AmendLastMessage(message); amendErr != nil {
			return fmt.Errorf("failed to amend commit: %w", amendErr)
		}
		fmt.Fprintln(s.out, color.Ize(color.Green, "Fixed up commit with new message:"))
		fmt.Fprintln(s.out, message)
		return nil
	}

	hasChanges, err := s.store.HasChangesToCommit()
	if err != nil {
		return fmt.Errorf("failed to check for pending changes: %w", err)
	}
	if !hasChanges {
		fmt.Fprintln(s.out, "No changes to commit")
		return nil
	}

	if commitErr := s.store.StageAndCommit(message); commitErr != nil {
		return fmt.Errorf("failed to commit: %w", commitErr)
	}
	fmt.Fprintln(s.out, color.Ize(color.Green, "Committed changes with message:"))
	fmt.Fprintln(s.out, message)
	return nil
}

func (s *CommitService) printFramed(message string) {
	rule := color.Ize(color.Gray, strings.Repeat("=", previewRuleWidth))
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, message)
	fmt.Fprintln(s.out, rule)
}
