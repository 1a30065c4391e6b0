package engine

import "github.com/danieljhkim/humanutils/internal/planner"

// EventType classifies a line of tool output.
type EventType int

const (
	// EventCreated reports a new file or directory (N).
	EventCreated EventType = iota

	// EventModified reports a file written over an existing entry (M).
	EventModified

	// EventDeleted reports a removed entry (D).
	EventDeleted

	// EventMoved reports a moved or renamed source (M src -> dst).
	EventMoved

	// EventCopied reports a copied source (C src -> dst).
	EventCopied

	// EventRenamed reports a nam rename ("src" -> "dst").
	EventRenamed

	// EventExists reports a requested entry that was already in place.
	EventExists

	// EventAlreadyAt reports a source that already is at its destination.
	EventAlreadyAt
)

// Event is one line of tool output.
type Event struct {
	Type EventType

	// Path is the created, deleted or destination path
	Path string

	// Kind is the kind of the entry at Path
	Kind planner.Kind

	// Source is set for transfers
	Source string

	// Ancestor is the nearest ancestor of Path that existed before the run
	Ancestor string
}

// NewResult represents the result of executing a create plan.
type NewResult struct {
	Plan   *planner.CreatePlan
	Events []Event
}

// TransferItem is a single source and where it ends up.
type TransferItem struct {
	// Source is the source as given on the command line
	Source string

	// Target is the final path of the source
	Target string

	// Kind is the kind of the source entry
	Kind planner.Kind

	// Existing is what was found at Target during planning, if anything
	Existing *planner.ConflictRecord

	// Ancestor is the nearest ancestor of Target that exists as a directory
	Ancestor string
}

// TransferPlan is the validated plan of a mov, cop or nam run.
type TransferPlan struct {
	Mode TransferMode

	// Into is true in move-into mode
	Into bool

	// Destination is the destination as given on the command line
	Destination string

	// CreateDestination is set when the move-into directory does not exist
	CreateDestination bool

	Items []TransferItem

	// Noops report sources that already are at their destination
	Noops []Event
}

// Confirm lists every existing target the plan replaces.
func (p *TransferPlan) Confirm() []planner.ConflictRecord {
	var out []planner.ConflictRecord
	for _, item := range p.Items {
		if item.Existing != nil {
			out = append(out, *item.Existing)
		}
	}
	return out
}

// NeedsConfirmation returns true if the plan replaces existing entries.
func (p *TransferPlan) NeedsConfirmation() bool {
	return len(p.Confirm()) > 0
}

// TransferResult represents the result of executing a transfer plan.
type TransferResult struct {
	Plan   *TransferPlan
	Events []Event
}

// DeleteTarget is an existing entry a delete plan removes.
type DeleteTarget struct {
	// Display is the path as printed: the argument, directories with a
	// trailing separator
	Display string

	// Abs is the absolute path removed, with the parent resolved
	Abs string

	Record planner.ConflictRecord
}

// DeletePlan is the validated plan of a del run.
type DeletePlan struct {
	// Args are the paths as given, in argument order
	Args []string

	// Targets are existing entries in argument order
	Targets []DeleteTarget

	// Missing are the paths that could not be looked up
	Missing []*PathError

	// Multiple is true when more than one path was given
	Multiple bool

	// TrackCwdFile receives the new working directory when it has to change
	TrackCwdFile string
}

// NeedsConfirmation returns true if the plan removes anything.
func (p *DeletePlan) NeedsConfirmation() bool {
	return len(p.Targets) > 0
}

// DeleteResult represents the result of executing a delete plan.
type DeleteResult struct {
	Events []Event

	// Failures are removals that failed; the others were still attempted
	Failures []*PathError

	// NewCwd is the directory the process moved to because its working
	// directory was removed, or "" when it stayed put
	NewCwd string
}
