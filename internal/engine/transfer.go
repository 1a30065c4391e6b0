package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"syscall"

	"github.com/danieljhkim/humanutils/internal/planner"
)

// PlanTransfer validates a mov, cop or nam request and works out where every
// source ends up.
//
// Move-into mode is used when Into is set or the destination ends with a
// separator (never for TransferRename); each source then lands at
// Destination/<base(source)>. Otherwise exactly one source is renamed to
// Destination. Sources already at their destination become no-op events.
func (e *Engine) PlanTransfer(req *TransferRequest) (*TransferPlan, error) {
	verb := req.Mode.String()

	if req.Into && req.To {
		return nil, planner.NewArgumentError("The --into and --to options cannot be used together.")
	}
	if len(req.Sources) == 0 {
		return nil, planner.NewArgumentError("At least one SOURCE_PATH is required.")
	}
	if req.Destination == "" {
		return nil, planner.NewArgumentError("DESTINATION_PATH cannot be empty.")
	}

	into := req.Mode != TransferRename &&
		(req.Into || (!req.To && planner.HasTrailingSeparator(req.Destination)))
	if !into && len(req.Sources) != 1 {
		reason := fmt.Sprintf("DESTINATION_PATH did not end with a %c", filepath.Separator)
		if req.To {
			reason = "the --to option was used"
		}
		return nil, planner.NewArgumentError(
			"Expected 1 SOURCE_PATH argument because %s, but got %d", reason, len(req.Sources))
	}

	plan := &TransferPlan{
		Mode:        req.Mode,
		Into:        into,
		Destination: req.Destination,
	}

	sources := make([]planner.ConflictRecord, 0, len(req.Sources))
	for _, raw := range req.Sources {
		record, err := e.inspectSource(raw)
		if err != nil {
			return nil, err
		}
		sources = append(sources, record)
	}

	var err error
	if into {
		err = e.planInto(plan, req.Sources, sources)
	} else {
		err = e.planRename(plan, req.Sources[0], sources[0])
	}
	if err != nil {
		return nil, err
	}

	e.logger.Debug("planned "+verb,
		"into", into,
		"items", len(plan.Items),
		"noops", len(plan.Noops))
	return plan, nil
}

// inspectSource looks up a source, which must exist and have a usable name.
func (e *Engine) inspectSource(raw string) (planner.ConflictRecord, error) {
	if raw == "" {
		return planner.ConflictRecord{}, planner.NewArgumentError("SOURCE_PATH cannot be empty.")
	}
	path := planner.Normalize(raw)
	if err := e.fs.ValidateName(filepath.Base(path)); err != nil {
		return planner.ConflictRecord{}, planner.NewArgumentError("Cannot use %q as a source: %v", raw, err)
	}

	record, exists, err := planner.Inspect(e.fs, path)
	if err != nil {
		return planner.ConflictRecord{}, err
	}
	if !exists {
		return planner.ConflictRecord{}, newPathError("stat", raw, planner.KindFile, syscall.ENOENT)
	}
	return record, nil
}

func (e *Engine) planRename(plan *TransferPlan, raw string, source planner.ConflictRecord) error {
	target := planner.Normalize(plan.Destination)
	if err := e.fs.ValidateName(filepath.Base(target)); err != nil {
		return planner.NewArgumentError("Cannot use %q as a destination: %v", plan.Destination, err)
	}

	sourceAbs, err := e.resolveEntry(source.Path)
	if err != nil {
		return err
	}
	targetAbs, err := e.resolveEntry(target)
	if err != nil {
		return err
	}
	if sourceAbs == targetAbs {
		plan.Noops = append(plan.Noops, Event{
			Type:   EventAlreadyAt,
			Source: raw,
			Path:   plan.Destination,
			Kind:   source.Kind,
		})
		return nil
	}

	item, err := e.planItem(plan.Mode, raw, source, sourceAbs, target, targetAbs)
	if err != nil {
		return err
	}
	if plan.Mode != TransferRename {
		item.Ancestor, err = e.existingAncestor(target)
		if err != nil {
			return err
		}
	}
	plan.Items = append(plan.Items, item)
	return nil
}

func (e *Engine) planInto(plan *TransferPlan, raws []string, sources []planner.ConflictRecord) error {
	dest := planner.Normalize(plan.Destination)
	display := displayPath(plan.Destination, true)

	destRecord, destExists, err := planner.Inspect(e.fs, dest)
	if err != nil {
		return err
	}
	if destExists && !destRecord.IsDirLike() {
		return newPathError("stat", display, destRecord.Kind, syscall.ENOTDIR)
	}
	plan.CreateDestination = !destExists

	destAbs, err := e.resolve(dest)
	if err != nil {
		return err
	}

	var ancestor string
	switch {
	case dest == ".":
	case destExists:
		ancestor = dest
	default:
		if ancestor, err = e.existingAncestor(dest); err != nil {
			return err
		}
	}

	seen := make(map[string]string, len(sources))
	for i, source := range sources {
		raw := raws[i]
		target := filepath.Join(dest, filepath.Base(source.Path))
		if prev, dup := seen[target]; dup {
			return planner.NewArgumentError("Cannot %s both %q and %q to %q.", plan.Mode, prev, raw, target)
		}
		seen[target] = raw

		sourceAbs, err := e.resolveEntry(source.Path)
		if err != nil {
			return err
		}
		if filepath.Dir(sourceAbs) == destAbs {
			plan.Noops = append(plan.Noops, Event{
				Type:   EventAlreadyAt,
				Source: raw,
				Path:   display,
				Kind:   source.Kind,
			})
			continue
		}

		targetAbs := filepath.Join(destAbs, filepath.Base(sourceAbs))
		item, err := e.planItem(plan.Mode, raw, source, sourceAbs, target, targetAbs)
		if err != nil {
			return err
		}
		item.Ancestor = ancestor
		plan.Items = append(plan.Items, item)
	}
	return nil
}

// planItem rejects transfers of a directory into itself and of an entry over
// one of its own ancestors, then records what exists at target.
func (e *Engine) planItem(mode TransferMode, raw string, source planner.ConflictRecord, sourceAbs, target, targetAbs string) (TransferItem, error) {
	if source.Kind == planner.KindDirectory && isWithin(targetAbs, sourceAbs) {
		return TransferItem{}, planner.NewArgumentError("Cannot %s %q into itself.", mode, raw)
	}
	if isWithin(sourceAbs, targetAbs) {
		return TransferItem{}, planner.NewArgumentError("Cannot replace %q with its own content %q.", target, raw)
	}

	item := TransferItem{
		Source: raw,
		Target: target,
		Kind:   source.Kind,
	}
	record, exists, err := planner.Inspect(e.fs, target)
	if err != nil {
		return TransferItem{}, err
	}
	if exists {
		item.Existing = &record
	}
	return item, nil
}

// resolveEntry resolves the parent of p but not p itself, so a symlink is
// treated as the link and not its target.
func (e *Engine) resolveEntry(p string) (string, error) {
	parent, err := e.resolve(filepath.Dir(p))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(p)), nil
}

// ExecuteTransfer performs a transfer plan. Existing targets are removed
// before the source is renamed or copied into place. The first failure stops
// the run; the events recorded so far are returned with the error.
func (e *Engine) ExecuteTransfer(ctx context.Context, plan *TransferPlan, dryRun bool) (*TransferResult, error) {
	result := &TransferResult{Plan: plan}
	if len(plan.Items) == 0 {
		return result, nil
	}

	if !dryRun && plan.Into && plan.CreateDestination {
		dest := planner.Normalize(plan.Destination)
		e.logger.Debug("creating destination", "path", dest)
		if err := e.fs.MkdirAll(dest, dirPerm); err != nil {
			return result, newPathError("create directory", dest, planner.KindDirectory, err)
		}
	}

	for _, item := range plan.Items {
		if err := checkContext(ctx); err != nil {
			return result, err
		}
		if !dryRun {
			if err := e.transfer(plan, item); err != nil {
				return result, err
			}
		}

		event := Event{
			Type:     EventMoved,
			Path:     item.Target,
			Kind:     item.Kind,
			Source:   item.Source,
			Ancestor: item.Ancestor,
		}
		switch plan.Mode {
		case TransferCopy:
			event.Type = EventCopied
		case TransferRename:
			event.Type = EventRenamed
			event.Path = plan.Destination
		}
		result.Events = append(result.Events, event)
	}

	return result, nil
}

func (e *Engine) transfer(plan *TransferPlan, item TransferItem) error {
	if !plan.Into && plan.Mode != TransferRename {
		if parent := filepath.Dir(item.Target); parent != "." {
			if err := e.fs.MkdirAll(parent, dirPerm); err != nil {
				return newPathError("create directory", parent, planner.KindDirectory, err)
			}
		}
	}

	if item.Existing != nil {
		e.logger.Debug("replacing existing target", "path", item.Target, "kind", item.Existing.Kind.String())
		if err := e.fs.RemoveAll(item.Target); err != nil {
			return newPathError("remove", item.Target, item.Existing.Kind, err)
		}
	}

	source := planner.Normalize(item.Source)
	e.logger.Debug(plan.Mode.String(), "source", source, "target", item.Target)
	if plan.Mode == TransferCopy {
		if err := e.fs.Copy(source, item.Target); err != nil {
			return newPathError("copy", item.Source, item.Kind, err)
		}
		return nil
	}
	if err := e.fs.Rename(source, item.Target); err != nil {
		return newPathError(plan.Mode.String(), item.Source, item.Kind, err)
	}
	return nil
}
