// Package planner resolves the paths a command was asked to create into a
// deterministic plan before anything on disk is touched.
//
// The planner classifies raw arguments into file and directory requests,
// computes every directory those requests imply, rejects requests that ask
// for the same path as both kinds, and stats the filesystem once per path to
// find entries that would have to be deleted or overwritten.
//
// Key responsibilities:
//   - Partition raw paths into a NormalizedPathSet (CombineInputPaths)
//   - Compute the AncestorClosure of a path set
//   - Reject file/directory overlaps before any I/O (CheckArgumentConflicts)
//   - Detect clashes with existing entries (CheckConflicts)
//   - Build an ordered CreatePlan (BuildCreatePlan)
package planner
