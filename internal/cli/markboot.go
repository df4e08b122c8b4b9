package cli

import (
	"github.com/spf13/cobra"
)

// NewMarkBootCommand creates the mark-boot command.
func NewMarkBootCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-boot",
		Short: "Clear the attempted boot count after a successful boot",
		Long: `Clear persist.device_config.attempted_boot_count.

Init runs this on sys.boot_completed=1 so that only consecutive failed boots
count toward the reset threshold.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.tracker.MarkBoot(); err != nil {
				return WrapExitError(ExitFailure, "failed to mark boot", err)
			}
			return s.out.Success("attempted boot count cleared")
		},
	}

	return cmd
}
