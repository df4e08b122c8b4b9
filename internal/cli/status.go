package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/recovery"
)

// StatusReport is the output of the status command.
type StatusReport struct {
	recovery.Status
	Gated bool `json:"gated"`
}

func (r StatusReport) String() string {
	next := "tally"
	if r.WillReset {
		next = "reset"
	}
	return fmt.Sprintf("attempted boot count: %d/%d\nflags set: %d\ngated: %t\nnext boot: %s",
		r.Count, r.Threshold, r.Flags, r.Gated, next)
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status",
		Short:         "Show the attempted boot count and flag totals",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			st, err := s.tracker.Status()
			if err != nil {
				return WrapExitError(ExitFailure, "failed to read status", err)
			}
			return s.out.Success(StatusReport{Status: st, Gated: s.cfg.Gated})
		},
	}

	return cmd
}
