package planner

import "os"

// Kind is the kind of a filesystem entry.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// RequestedPath is a normalized path tagged with the kind the user asked for.
type RequestedPath struct {
	Path string
	Kind Kind

	// TrailingSeparator records whether the raw argument ended in a separator.
	TrailingSeparator bool
}

// PathSet holds the directory and file creation requests of one invocation.
// Both slices are sorted and duplicate-free.
type PathSet struct {
	Directories []string
	Files       []string
}

// AncestorClosure is the sorted set of every directory implied by a PathSet.
type AncestorClosure []string

// ConflictRecord describes an entry that already exists at a path.
type ConflictRecord struct {
	Path string
	Kind Kind
	Size int64
	Mode os.FileMode

	// TargetIsDir is set for symlinks that resolve to a directory.
	TargetIsDir bool
}

// IsDirLike reports whether the entry can stand in for a directory.
func (r ConflictRecord) IsDirLike() bool {
	return r.Kind == KindDirectory || (r.Kind == KindSymlink && r.TargetIsDir)
}

// IsEmptyFile reports whether the entry is a regular file with no content.
func (r ConflictRecord) IsEmptyFile() bool {
	return r.Kind == KindFile && r.Size == 0
}

// Conflicts is the result of CheckConflicts.
type Conflicts struct {
	// Records holds every path that had an entry, keyed by path.
	Records map[string]ConflictRecord

	// WithDirectories lists closure paths where something already exists.
	WithDirectories []ConflictRecord

	// WithFiles lists requested files where a directory, a symlink or a
	// non-empty file already exists.
	WithFiles []ConflictRecord
}

// Lookup returns the record for path, if any.
func (c *Conflicts) Lookup(path string) (ConflictRecord, bool) {
	if c == nil {
		return ConflictRecord{}, false
	}
	r, ok := c.Records[path]
	return r, ok
}

// Action is the status tag reported for a planned entry.
type Action string

// Action constants
const (
	ActionNew      Action = "N"
	ActionModified Action = "M"
	ActionDeleted  Action = "D"
	ActionNoop     Action = "="
)

// Entry is a single step of a CreatePlan.
type Entry struct {
	Path   string
	Kind   Kind
	Action Action

	// Existing is what was found at Path during planning, if anything.
	Existing *ConflictRecord

	// Ancestor is the nearest ancestor that already exists as a directory.
	Ancestor string
}

// CreatePlan is the ordered delete-then-create plan of the new command.
type CreatePlan struct {
	Set     PathSet
	Closure AncestorClosure

	// Deletions are existing entries removed before anything is created.
	Deletions []Entry

	// Confirm lists every existing entry that will be deleted or
	// overwritten, sorted by path.
	Confirm []ConflictRecord

	Directories []Entry
	Files       []Entry
}

// NeedsConfirmation returns true if the plan destroys existing data.
func (p *CreatePlan) NeedsConfirmation() bool {
	return len(p.Confirm) > 0
}
