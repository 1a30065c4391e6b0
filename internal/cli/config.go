package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/config"
)

func newConfigCmd(streams *Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the settings file and its values",
		Long: `Show where human-utils reads its settings from and the values in effect.

The settings file is YAML with the keys color (auto, always, never),
silent (true, false), log_level (off, error, warn, info, debug) and
log_format (text, json).
HUMAN_UTILS_CONFIG overrides its location.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the path of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths()
			if err != nil {
				return fmt.Errorf("failed to get config paths: %w", err)
			}
			_, _ = fmt.Fprintln(streams.Out, paths.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the settings in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := config.DefaultPaths()
			if err != nil {
				return fmt.Errorf("failed to get config paths: %w", err)
			}
			settings, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			data, err := settings.Marshal()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(streams.Out, string(data))
			return nil
		},
	})

	return cmd
}
