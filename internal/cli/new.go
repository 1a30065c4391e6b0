package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/engine"
)

const newDetails = `As part of human-utils, new asks for confirmation before
deleting or overwriting anything that is in the way.

A path ending in / is created as a directory, any other path as an
empty file. Missing parent directories are created. Words after --
are joined with spaces and written to every file with a trailing
newline.

Examples where new differs from touch and mkdir -p:

  Asks for confirmation:
    new a -- text where a is a non-empty file asks before
    overwriting it.

  Replaces what is in the way:
    new a/b where a is a file asks for confirmation, deletes
    the file a and creates the directory a with the file b.

  Idempotent:
    new a where a is an existing empty file does nothing and
    succeeds, as does new a/ where a is an existing directory.`

func newNewCmd(streams *Streams) *cobra.Command {
	opts := &StandardOptions{}
	var files, directories []string

	cmd := &cobra.Command{
		Use:   "new [PATH]... [--file PATH]... [--directory PATH]... [-- CONTENT...]",
		Short: "Create files and directories",
		Long:  "Create new files and directories.\n\n" + newDetails,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, words := splitContent(cmd, args)

			s, err := newSession(cmd, "new", streams, opts)
			if err != nil {
				return err
			}

			req := &engine.NewRequest{
				Paths:       paths,
				Files:       files,
				Directories: directories,
				Content:     engine.JoinContent(words),
				HasContent:  len(words) > 0,
			}

			plan, err := s.eng.PlanNew(req)
			if err != nil {
				return err
			}

			if plan.NeedsConfirmation() {
				if err := s.confirm(overwritePrompt(plan.Confirm)); err != nil {
					return err
				}
			}

			result, err := s.eng.ExecuteNew(s.ctx, plan, req, opts.DryRun)
			if result != nil {
				s.printer.Events(result.Events)
			}
			return err
		},
	}

	cmd.Flags().StringArrayVar(&files, "file", nil, "Create a file at PATH, even without a trailing /")
	cmd.Flags().StringArrayVarP(&directories, "directory", "d", nil, "Create a directory at PATH, even without a trailing /")
	addStandardFlags(cmd, opts)

	return cmd
}

// splitContent separates paths from the content words given after "--".
func splitContent(cmd *cobra.Command, args []string) (paths, words []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}
