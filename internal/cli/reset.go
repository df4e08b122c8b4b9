package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ResetReport is the output of the reset command.
type ResetReport struct {
	RunID   string `json:"run_id"`
	Cleared int    `json:"cleared"`
}

func (r ResetReport) String() string {
	return fmt.Sprintf("cleared %d properties", r.Cleared)
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every server configurable flag now",
		Long: `Clear every non-empty persist.device_config.* property, regardless of the
attempted boot count. Other properties are never touched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetFlags(rootOpts, cmd)
		},
	}

	return cmd
}

func resetFlags(opts *RootOptions, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	cleared, err := s.tracker.ResetAllFlags()
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("reset incomplete after clearing %d properties", cleared), err)
	}
	s.logger.Info("flags reset", "cleared", cleared)
	return s.out.Success(ResetReport{RunID: s.runID, Cleared: cleared})
}
