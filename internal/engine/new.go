package engine

import (
	"context"
	"os"
	"strings"

	"github.com/danieljhkim/humanutils/internal/planner"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// JoinContent turns the words given after "--" into file content: words are
// joined with single spaces and a newline is appended unless the result is
// empty.
func JoinContent(words []string) []byte {
	content := strings.Join(words, " ")
	if content == "" {
		return []byte{}
	}
	return []byte(content + "\n")
}

// PlanNew resolves a new request into a create plan.
//
// Planning steps:
//  1. Partition the raw paths into directories and files
//  2. Compute the ancestor closure and reject paths requested as both
//  3. Look up every closure path and file once
//  4. Build the ordered delete-then-create plan
//
// Nothing is mutated. Argument errors wrap ErrValidation.
func (e *Engine) PlanNew(req *NewRequest) (*planner.CreatePlan, error) {
	if len(req.Paths)+len(req.Files)+len(req.Directories) == 0 {
		return nil, planner.NewArgumentError("At least one path is required.")
	}

	set, err := planner.CombineInputPaths(req.Paths, req.Files, req.Directories)
	if err != nil {
		return nil, err
	}

	closure := planner.ComputeAncestorClosure(set)
	if err := planner.CheckArgumentConflicts(closure, set.Files); err != nil {
		return nil, err
	}

	conflicts, err := planner.CheckConflicts(e.fs, closure, set.Files)
	if err != nil {
		return nil, err
	}

	plan := planner.BuildCreatePlan(set, closure, conflicts, req.HasContent)
	e.logger.Debug("planned new",
		"directories", len(plan.Directories),
		"files", len(plan.Files),
		"deletions", len(plan.Deletions))
	return plan, nil
}

// ExecuteNew performs a create plan: clashing entries are deleted first,
// then directories are created, then files are written. The first failure
// stops the run; the events recorded so far are returned with the error.
// With dryRun set the events are reported but nothing is touched.
func (e *Engine) ExecuteNew(ctx context.Context, plan *planner.CreatePlan, req *NewRequest, dryRun bool) (*NewResult, error) {
	result := &NewResult{Plan: plan}

	deleted, err := e.DeleteClashing(ctx, plan.Deletions, dryRun)
	result.Events = append(result.Events, deleted...)
	if err != nil {
		return result, err
	}

	for _, entry := range plan.Directories {
		if entry.Action == planner.ActionNoop {
			result.Events = append(result.Events, Event{Type: EventExists, Path: entry.Path, Kind: planner.KindDirectory})
			continue
		}
		if err := checkContext(ctx); err != nil {
			return result, err
		}
		if !dryRun {
			e.logger.Debug("creating directory", "path", entry.Path)
			if err := e.fs.MkdirAll(entry.Path, dirPerm); err != nil {
				return result, newPathError("create directory", entry.Path, planner.KindDirectory, err)
			}
		}
		result.Events = append(result.Events, Event{
			Type:     EventCreated,
			Path:     entry.Path,
			Kind:     planner.KindDirectory,
			Ancestor: entry.Ancestor,
		})
	}

	var content []byte
	if req != nil && req.HasContent {
		content = req.Content
	}

	for _, entry := range plan.Files {
		if entry.Action == planner.ActionNoop {
			result.Events = append(result.Events, Event{Type: EventExists, Path: entry.Path, Kind: planner.KindFile})
			continue
		}
		if err := checkContext(ctx); err != nil {
			return result, err
		}

		perm := os.FileMode(filePerm)
		if entry.Existing != nil && entry.Existing.Kind == planner.KindFile {
			perm = entry.Existing.Mode.Perm()
		}
		if !dryRun {
			e.logger.Debug("writing file", "path", entry.Path, "bytes", len(content))
			if err := e.fs.AtomicWrite(entry.Path, content, perm); err != nil {
				return result, newPathError("write file", entry.Path, planner.KindFile, err)
			}
		}

		eventType := EventCreated
		if entry.Action == planner.ActionModified {
			eventType = EventModified
		}
		result.Events = append(result.Events, Event{
			Type:     eventType,
			Path:     entry.Path,
			Kind:     planner.KindFile,
			Ancestor: entry.Ancestor,
		})
	}

	return result, nil
}

// DeleteClashing removes every entry a create plan marked for deletion:
// directories recursively, files and symlinks with a single remove.
func (e *Engine) DeleteClashing(ctx context.Context, deletions []planner.Entry, dryRun bool) ([]Event, error) {
	var events []Event
	for _, entry := range deletions {
		if err := checkContext(ctx); err != nil {
			return events, err
		}
		if !dryRun {
			e.logger.Debug("removing clashing entry", "path", entry.Path, "kind", entry.Kind.String())
			var err error
			if entry.Kind == planner.KindDirectory {
				err = e.fs.RemoveAll(entry.Path)
			} else {
				err = e.fs.Remove(entry.Path)
			}
			if err != nil {
				return events, newPathError("remove", entry.Path, entry.Kind, err)
			}
		}
		events = append(events, Event{Type: EventDeleted, Path: entry.Path, Kind: entry.Kind})
	}
	return events, nil
}
