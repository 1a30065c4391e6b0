// Package engine provides the core logic of the human-utils tools.
//
// The engine sits between the CLI commands and the filesystem. Every tool is
// split in two steps: a Plan method that only looks at the filesystem and
// validates the request, and an Execute method that performs the mutations
// the plan describes. The CLI asks for confirmation in between.
//
// Key components:
//   - Engine: holds the filesystem and logger shared by all tools
//   - PlanNew/ExecuteNew: file and directory creation (new)
//   - PlanTransfer/ExecuteTransfer: move, copy and rename (mov, cop, nam)
//   - PlanDelete/ExecuteDelete: deletion (del)
package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/danieljhkim/humanutils/internal/fsops"
	"github.com/danieljhkim/humanutils/internal/planner"
)

// Engine orchestrates all human-utils operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	logger *slog.Logger
}

// New creates a new Engine with the given dependencies. A nil logger
// discards everything.
func New(fs fsops.FS, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		fs:     fs,
		logger: logger,
	}
}

// existingAncestor returns the nearest proper ancestor of path that exists as
// a directory, or "" when there is none below the working directory.
func (e *Engine) existingAncestor(path string) (string, error) {
	ancestors := planner.Ancestors(path)
	if len(ancestors) < 2 {
		return "", nil
	}
	for _, a := range ancestors[1:] {
		record, exists, err := planner.Inspect(e.fs, a)
		if err != nil {
			return "", err
		}
		if exists && record.IsDirLike() {
			return a, nil
		}
	}
	return "", nil
}

// checkContext reports whether the run was interrupted.
func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
