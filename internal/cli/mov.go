package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/engine"
)

const movDetails = `As part of human-utils, %[1]s asks for confirmation if
a file or directory already exists at DESTINATION_PATH.

Examples where %[1]s differs from %[2]s:

  Asks for confirmation:
    %[1]s a b where b is an existing file asks for
    confirmation and then replaces b with a.

  Always renames:
    %[1]s a b where b is an existing directory asks for
    confirmation and then replaces b with a. To %[3]s into a
    directory, end DESTINATION_PATH in / or use --into.

  Existing location:
    %[1]s a a succeeds and does nothing, as does %[1]s a /foo/a
    where a already is /foo/a.`

// transferTool describes one of the mov-like tools.
type transferTool struct {
	name  string
	mode  engine.TransferMode
	short string
	unix  string
	verb  string
}

var transferTools = map[string]transferTool{
	"mov": {name: "mov", mode: engine.TransferMove, short: "Move files and directories", unix: "mv", verb: "move"},
	"ren": {name: "ren", mode: engine.TransferMove, short: "Rename or move files and directories", unix: "mv", verb: "move"},
	"cop": {name: "cop", mode: engine.TransferCopy, short: "Copy files and directories", unix: "cp -r", verb: "copy"},
}

func newTransferCmd(tool transferTool, streams *Streams) *cobra.Command {
	opts := &StandardOptions{}
	var into, to bool

	cmd := &cobra.Command{
		Use:   tool.name + " SOURCE_PATH... DESTINATION_PATH",
		Short: tool.short,
		Long:  tool.short + ".\n\n" + fmt.Sprintf(movDetails, tool.name, tool.unix, tool.verb),
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, tool.name, streams, opts)
			if err != nil {
				return err
			}
			req := &engine.TransferRequest{
				Mode:        tool.mode,
				Sources:     args[:len(args)-1],
				Destination: args[len(args)-1],
				Into:        into,
				To:          to,
			}
			return runTransfer(s, req)
		},
	}

	cmd.Flags().BoolVarP(&into, "into", "i", false, "Put every SOURCE_PATH inside the directory DESTINATION_PATH")
	cmd.Flags().BoolVarP(&to, "to", "t", false, "Rename the single SOURCE_PATH to DESTINATION_PATH, even if it ends with /")
	cmd.MarkFlagsMutuallyExclusive("into", "to")
	addStandardFlags(cmd, opts)

	return cmd
}

// runTransfer plans, confirms and executes a mov, cop or nam request.
func runTransfer(s *session, req *engine.TransferRequest) error {
	plan, err := s.eng.PlanTransfer(req)
	if err != nil {
		return err
	}

	s.printer.Events(plan.Noops)
	if len(plan.Items) == 0 {
		return nil
	}

	if confirm := plan.Confirm(); len(confirm) > 0 {
		prompt := overwritePrompt(confirm)
		if !plan.Into {
			prompt = replacePrompt(confirm[0], req.Destination)
		}
		if err := s.confirm(prompt); err != nil {
			return err
		}
	}

	result, err := s.eng.ExecuteTransfer(s.ctx, plan, s.opts.DryRun)
	if result != nil {
		s.printer.Events(result.Events)
	}
	return err
}
