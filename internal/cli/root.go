package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/props"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Backend    string
	Database   string
	Gated      bool
	Threshold  int

	// Store replaces the configured backend (for testing).
	Store props.Store

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the flags_health_check command.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the boot-time command bound to opts. It
// has no subcommands: any positional argument is a usage error.
// Flag defaults overwrite the flag-backed fields of opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags_health_check",
		Short: "Server configurable flags health check",
		Long: `Recover from server configurable flags that prevent the device from booting.

Run with no arguments from init before boot completes. Each run increments
persist.device_config.attempted_boot_count; once the count reaches the
threshold, every persist.device_config.* property is cleared so flags fall
back to their built-in defaults. "flagsctl mark-boot" clears the count when
sys.boot_completed is set.

With gating enabled the check first reads
global_settings/native_flags_health_check_enabled and runs only when it is
"1" or unset.`,
		Args:          noPositionalArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealthCheck(opts, cmd)
		},
	}
	bindGlobalFlags(cmd, opts)
	return cmd
}

// NewCtlCommand creates the flagsctl maintenance command.
func NewCtlCommand() *cobra.Command {
	return NewCtlCommandWithOptions(&RootOptions{})
}

// NewCtlCommandWithOptions creates the maintenance command bound to opts.
func NewCtlCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flagsctl",
		Short: "Inspect and maintain server configurable flags",
		Long: `Inspect and maintain the properties read by flags_health_check.

Init runs mark-boot once sys.boot_completed is set. The remaining commands
are for operators and tests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	bindGlobalFlags(cmd, opts)

	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewSetCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewMarkBootCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewScenarioCommand(opts))

	return cmd
}

// bindGlobalFlags registers the flags shared by both commands.
func bindGlobalFlags(cmd *cobra.Command, opts *RootOptions) {
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !isValidFormat(opts.Format) {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
		}
		return nil
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config (default $FLAGRESCUE_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "property store backend (device|sqlite|memory)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "SQLite property database (sqlite backend)")
	cmd.PersistentFlags().BoolVar(&opts.Gated, "gated", true, "honor the remote health check switch")
	cmd.PersistentFlags().IntVar(&opts.Threshold, "threshold", 0, "attempted boot count that triggers a reset")
}

// noPositionalArgs rejects arguments to the boot-time check. Init must
// launch it bare; anything else is a misconfigured service.
func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	logger.Error("health check takes no arguments", "args", args)
	return NewExitError(ExitFailure,
		fmt.Sprintf("%s takes no arguments, got %d", cmd.Name(), len(args)))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
