package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// PropertyWrite is the output of the set command.
type PropertyWrite struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (w PropertyWrite) String() string {
	return fmt.Sprintf("%s=%s", w.Key, w.Value)
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a raw property",
		Long: `Write a raw property to the configured store.

Intended for seeding sqlite-backed stores when reproducing boot loops off
device. An empty value clears the property.

Example:
  flagsctl --backend sqlite --db props.db set persist.device_config.attempted_boot_count 3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setProperty(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func setProperty(opts *RootOptions, key, value string, cmd *cobra.Command) error {
	s, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Set(key, value); err != nil {
		return WrapExitError(ExitFailure, "failed to set property", err)
	}
	s.logger.Debug("property written", "key", key)
	return s.out.Success(PropertyWrite{Key: key, Value: value})
}
