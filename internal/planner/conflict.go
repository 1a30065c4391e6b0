package planner

import (
	"fmt"
	"os"
	"sort"

	"github.com/danieljhkim/humanutils/internal/fsops"
)

// Inspect performs a single non-following lookup of path. It returns
// (record, true, nil) when something exists there and (zero, false, nil)
// when nothing does.
func Inspect(fs fsops.FS, path string) (ConflictRecord, bool, error) {
	info, err := fs.Lstat(path)
	if err != nil {
		if fsops.IsNotExist(err) {
			return ConflictRecord{}, false, nil
		}
		return ConflictRecord{}, false, fmt.Errorf("failed to check %q: %w", path, err)
	}
	return recordFromInfo(fs, path, info), true, nil
}

func recordFromInfo(fs fsops.FS, path string, info os.FileInfo) ConflictRecord {
	record := ConflictRecord{
		Path: path,
		Size: info.Size(),
		Mode: info.Mode(),
	}
	switch {
	case fsops.IsSymlink(info):
		record.Kind = KindSymlink
		if target, err := fs.Stat(path); err == nil && target.IsDir() {
			record.TargetIsDir = true
		}
	case info.IsDir():
		record.Kind = KindDirectory
	default:
		record.Kind = KindFile
	}
	return record
}

// CheckConflicts looks up every closure path and every requested file once.
//
// A closure path clashes with directories when anything exists there. A file
// path clashes with files when a directory, a symlink or a non-empty file
// exists there; an empty regular file is safe to overwrite.
func CheckConflicts(fs fsops.FS, closure AncestorClosure, files []string) (*Conflicts, error) {
	conflicts := &Conflicts{Records: make(map[string]ConflictRecord)}

	for _, path := range closure {
		record, exists, err := Inspect(fs, path)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		conflicts.Records[path] = record
		conflicts.WithDirectories = append(conflicts.WithDirectories, record)
	}

	for _, path := range files {
		record, exists, err := Inspect(fs, path)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		conflicts.Records[path] = record
		if record.Kind == KindFile && record.Size == 0 {
			continue
		}
		conflicts.WithFiles = append(conflicts.WithFiles, record)
	}

	sortRecords(conflicts.WithDirectories)
	sortRecords(conflicts.WithFiles)
	return conflicts, nil
}

// BuildCreatePlan turns the resolved path set and the conflicts found on disk
// into an ordered plan. hasContent is true when files get explicit content.
func BuildCreatePlan(set PathSet, closure AncestorClosure, conflicts *Conflicts, hasContent bool) *CreatePlan {
	plan := &CreatePlan{
		Set:     set,
		Closure: closure,
	}
	if conflicts == nil {
		conflicts = &Conflicts{Records: map[string]ConflictRecord{}}
	}

	// The closure may name one location under several spellings; it is
	// deleted once.
	deleted := make(map[string]struct{})
	addDeletion := func(record ConflictRecord) {
		key := PathKey(record.Path)
		if _, ok := deleted[key]; ok {
			return
		}
		deleted[key] = struct{}{}
		plan.Deletions = append(plan.Deletions, deletionEntry(record))
	}

	var overwrites []ConflictRecord
	for _, record := range conflicts.WithDirectories {
		if record.IsDirLike() {
			continue
		}
		addDeletion(record)
	}
	for _, record := range conflicts.WithFiles {
		if record.Kind == KindDirectory || record.Kind == KindSymlink {
			addDeletion(record)
			continue
		}
		overwrites = append(overwrites, record)
	}
	sort.Slice(plan.Deletions, func(i, j int) bool {
		return plan.Deletions[i].Path < plan.Deletions[j].Path
	})

	for _, entry := range plan.Deletions {
		plan.Confirm = append(plan.Confirm, *entry.Existing)
	}
	plan.Confirm = append(plan.Confirm, overwrites...)
	sortRecords(plan.Confirm)

	for _, dir := range set.Directories {
		entry := Entry{Path: dir, Kind: KindDirectory, Action: ActionNew}
		if record, ok := conflicts.Lookup(dir); ok {
			entry.Existing = &record
			if record.IsDirLike() {
				entry.Action = ActionNoop
			}
		}
		entry.Ancestor = existingAncestor(conflicts, dir)
		plan.Directories = append(plan.Directories, entry)
	}

	for _, file := range set.Files {
		entry := Entry{Path: file, Kind: KindFile, Action: ActionNew}
		if record, ok := conflicts.Lookup(file); ok {
			entry.Existing = &record
			entry.Action = ActionModified
			if record.IsEmptyFile() && !hasContent {
				entry.Action = ActionNoop
			}
		}
		entry.Ancestor = existingAncestor(conflicts, file)
		plan.Files = append(plan.Files, entry)
	}

	return plan
}

func deletionEntry(record ConflictRecord) Entry {
	r := record
	return Entry{
		Path:     record.Path,
		Kind:     record.Kind,
		Action:   ActionDeleted,
		Existing: &r,
	}
}

// existingAncestor returns the nearest proper ancestor of path that exists as
// a directory. Every such ancestor was looked up as part of the closure.
func existingAncestor(conflicts *Conflicts, path string) string {
	ancestors := Ancestors(path)
	if len(ancestors) < 2 {
		return ""
	}
	for _, a := range ancestors[1:] {
		if record, ok := conflicts.Lookup(a); ok && record.IsDirLike() {
			return a
		}
	}
	return ""
}

func sortRecords(records []ConflictRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
}
