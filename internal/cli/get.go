package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/flagrescue/internal/flags"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Default string
}

// FlagValue is the output of the get command.
type FlagValue struct {
	Category string `json:"category"`
	Flag     string `json:"flag"`
	Value    string `json:"value"`
}

func (v FlagValue) String() string {
	return v.Value
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <category> <flag>",
		Short: "Read a server configurable flag",
		Long: `Read persist.device_config.<category>.<flag>.

Names may contain letters, digits, '_', '.', '-', '@' and ':' and may not
start or end with '.'. Invalid names and unset flags print the default.

Example:
  flagsctl get netd_native enable_x --default false`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return getFlag(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Default, "default", "", "value printed when the flag is unset or invalid")

	return cmd
}

func getFlag(opts *GetOptions, category, flag string, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	value := flags.Get(s.store, s.logger, category, flag, opts.Default)
	return s.out.Success(FlagValue{Category: category, Flag: flag, Value: value})
}
