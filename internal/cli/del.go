package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/planner"
)

const delDetails = `As part of human-utils, %[1]s asks for confirmation before
deleting any FILE_OR_DIRECTORY.

Examples where %[1]s differs from rm:

  Asks for confirmation:
    %[1]s a where a is an existing file asks for confirmation
    and then deletes a.

  Always deletes:
    %[1]s a where a is an existing directory asks for
    confirmation and then deletes a with everything in it.

Exits with a non-zero value if nothing was removed or if some
existing files or directories could not be removed.`

func newDelCmd(name string, streams *Streams) *cobra.Command {
	opts := &StandardOptions{}
	var trackCwdChange string

	verb := "Delete"
	if name == "rem" {
		verb = "Remove"
	}

	cmd := &cobra.Command{
		Use:   name + " FILE_OR_DIRECTORY...",
		Short: verb + " files and directories",
		Long:  verb + " files and directories.\n\n" + fmt.Sprintf(delDetails, name),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, name, streams, opts)
			if err != nil {
				return err
			}
			return runDelete(s, verb, &engine.DeleteRequest{
				Paths:        args,
				Force:        opts.Force,
				TrackCwdFile: trackCwdChange,
			})
		},
	}

	cmd.Flags().StringVar(&trackCwdChange, "track-cwd-change", "", "Write the new working directory to FILE when it is removed")
	_ = cmd.Flags().MarkHidden("track-cwd-change")
	addStandardFlags(cmd, opts)

	return cmd
}

func runDelete(s *session, verb string, req *engine.DeleteRequest) error {
	plan, err := s.eng.PlanDelete(req)
	if err != nil && !errors.Is(err, engine.ErrNothingToDelete) {
		return err
	}

	if !req.Force {
		if err := confirmDelete(s, verb, plan); err != nil {
			return err
		}
	}

	result, err := s.eng.ExecuteDelete(s.ctx, plan, s.opts.DryRun)
	if result != nil {
		for _, ev := range result.Events {
			s.printer.Success(s.printer.FormatRemoval(ev))
		}
		for _, failure := range result.Failures {
			kind := "file"
			if failure.Kind == planner.KindDirectory {
				kind = "directory"
			}
			s.printer.Error(fmt.Sprintf("Error for %s \"%s\": %v", kind, failure.Path, failure.Err))
		}
	}
	if err != nil {
		return err
	}
	if result != nil && len(result.Failures) > 0 {
		return errReported
	}
	return nil
}

// confirmDelete asks before deleting. With several paths the existing ones
// are listed and the missing ones reported; when none exist the run fails.
func confirmDelete(s *session, verb string, plan *engine.DeletePlan) error {
	lower := strings.ToLower(verb)

	if !plan.Multiple {
		if len(plan.Targets) == 0 {
			return nil
		}
		target := plan.Targets[0]
		return s.confirm(fmt.Sprintf("%s %s \"%s\"%s",
			verb, kindWord(target.Record), trimDisplay(target.Display), promptSuffix))
	}

	s.printer.Line("For the following...")
	missing := make(map[string]*engine.PathError, len(plan.Missing))
	for _, m := range plan.Missing {
		missing[m.Path] = m
	}
	targets := plan.Targets
	for _, arg := range plan.Args {
		if m, ok := missing[arg]; ok {
			s.printer.Error(fmt.Sprintf("\"%s\" error: %v", m.Path, m.Err))
			continue
		}
		s.printer.Line(pathString(targets[0].Display))
		targets = targets[1:]
	}

	if len(plan.Targets) == 0 {
		s.printer.Error("...no files or directories can be removed.")
		return errReported
	}

	existing := ""
	if len(plan.Missing) > 0 {
		existing = " existing"
	}
	return s.confirm(fmt.Sprintf("...%s all%s%s", lower, existing, promptSuffix))
}

// trimDisplay drops the trailing separator a directory is displayed with.
func trimDisplay(display string) string {
	if len(display) > 1 {
		return strings.TrimSuffix(display, string(filepath.Separator))
	}
	return display
}
