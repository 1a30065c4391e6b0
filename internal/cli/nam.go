package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/engine"
)

const namDetails = `As part of human-utils, nam asks for confirmation if
a file or directory already exists at DESTINATION.

Unlike mov, nam never moves into a directory and never creates
missing parent directories: nam a b where b is an existing
directory asks for confirmation and then replaces b with a.

nam a a succeeds and does nothing, as does nam a /foo/a where a
already is /foo/a.`

func newNamCmd(streams *Streams) *cobra.Command {
	opts := &StandardOptions{}

	cmd := &cobra.Command{
		Use:   "nam SOURCE DESTINATION",
		Short: "Rename a file or directory",
		Long:  "Rename a file or directory.\n\n" + namDetails,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, "nam", streams, opts)
			if err != nil {
				return err
			}
			return runTransfer(s, &engine.TransferRequest{
				Mode:        engine.TransferRename,
				Sources:     args[:1],
				Destination: args[1],
			})
		},
	}

	addStandardFlags(cmd, opts)
	return cmd
}
