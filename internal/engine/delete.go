package engine

import (
	"context"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/danieljhkim/humanutils/internal/planner"
)

// PlanDelete looks up every path of a del request once, in argument order.
//
// Without Force a single missing path fails with its *PathError, and a batch
// where nothing exists fails with ErrNothingToDelete (the plan is still
// returned so the missing paths can be reported). With Force missing paths
// are skipped.
func (e *Engine) PlanDelete(req *DeleteRequest) (*DeletePlan, error) {
	if len(req.Paths) == 0 {
		return nil, planner.NewArgumentError("At least one path is required.")
	}

	plan := &DeletePlan{
		Args:         req.Paths,
		Multiple:     len(req.Paths) > 1,
		TrackCwdFile: req.TrackCwdFile,
	}

	for _, raw := range req.Paths {
		if raw == "" {
			return nil, planner.NewArgumentError("Path cannot be empty.")
		}
		path := planner.Normalize(raw)

		record, exists, err := planner.Inspect(e.fs, path)
		if err != nil {
			plan.Missing = append(plan.Missing, newPathError("stat", raw, planner.KindFile, err))
			continue
		}
		if !exists {
			plan.Missing = append(plan.Missing, newPathError("stat", raw, planner.KindFile, syscall.ENOENT))
			continue
		}

		abs, err := e.resolveEntry(path)
		if err != nil {
			return nil, err
		}
		if filepath.Dir(abs) == abs {
			return nil, planner.NewArgumentError("Refusing to delete the filesystem root %q.", raw)
		}

		plan.Targets = append(plan.Targets, DeleteTarget{
			Display: displayPath(trimSeparators(raw), record.Kind == planner.KindDirectory),
			Abs:     abs,
			Record:  record,
		})
	}

	e.logger.Debug("planned delete", "targets", len(plan.Targets), "missing", len(plan.Missing))

	if req.Force {
		return plan, nil
	}
	if !plan.Multiple && len(plan.Missing) == 1 {
		return nil, plan.Missing[0]
	}
	if len(plan.Targets) == 0 {
		return plan, ErrNothingToDelete
	}
	return plan, nil
}

// ExecuteDelete removes every target of a delete plan: directories
// recursively, everything else with a single remove. A failed removal is
// recorded and the remaining targets are still attempted.
//
// When a removed directory contains the working directory, the process first
// moves to the directory's parent. The new directory is reported in the
// result and written to the plan's TrackCwdFile.
func (e *Engine) ExecuteDelete(ctx context.Context, plan *DeletePlan, dryRun bool) (*DeleteResult, error) {
	result := &DeleteResult{}

	for _, target := range plan.Targets {
		if err := checkContext(ctx); err != nil {
			return result, err
		}
		if !dryRun {
			if err := e.removeTarget(target, result); err != nil {
				result.Failures = append(result.Failures, err)
				continue
			}
		}
		result.Events = append(result.Events, Event{
			Type: EventDeleted,
			Path: target.Display,
			Kind: target.Record.Kind,
		})
	}

	if result.NewCwd != "" && plan.TrackCwdFile != "" {
		e.logger.Debug("recording working directory change", "file", plan.TrackCwdFile, "dir", result.NewCwd)
		if err := e.fs.AtomicWrite(plan.TrackCwdFile, []byte(result.NewCwd), filePerm); err != nil {
			return result, newPathError("write file", plan.TrackCwdFile, planner.KindFile, err)
		}
	}

	return result, nil
}

func (e *Engine) removeTarget(target DeleteTarget, result *DeleteResult) *PathError {
	display := trimSeparators(target.Display)
	kind := target.Record.Kind

	if kind != planner.KindDirectory {
		e.logger.Debug("removing", "path", target.Abs)
		if err := e.fs.Remove(target.Abs); err != nil {
			return newPathError("remove", display, kind, err)
		}
		return nil
	}

	moved, err := e.leaveDirectory(target.Abs)
	if err != nil {
		return newPathError("change directory from", display, kind, err)
	}
	if moved != "" {
		result.NewCwd = moved
	}

	e.logger.Debug("removing directory", "path", target.Abs)
	if err := e.fs.RemoveAll(target.Abs); err != nil {
		return newPathError("remove", display, kind, err)
	}
	return nil
}

// leaveDirectory changes to the parent of dir when the working directory is
// dir or lives below it. It returns the new working directory, or "" when
// nothing changed.
func (e *Engine) leaveDirectory(dir string) (string, error) {
	cwd, err := e.fs.Getwd()
	if err != nil {
		return "", err
	}
	if canonical, err := e.fs.Canonical(cwd); err == nil {
		cwd = canonical
	}
	if !isWithin(cwd, dir) {
		return "", nil
	}

	parent := filepath.Dir(dir)
	e.logger.Debug("leaving directory before removal", "from", cwd, "to", parent)
	if err := e.fs.Chdir(parent); err != nil {
		return "", err
	}
	return parent, nil
}

// trimSeparators strips trailing separators but keeps a lone root.
func trimSeparators(p string) string {
	trimmed := strings.TrimRight(p, string(filepath.Separator))
	if trimmed == "" && p != "" {
		return string(filepath.Separator)
	}
	return trimmed
}
