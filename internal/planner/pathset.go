package planner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidArguments indicates a request that can never succeed regardless
// of what is on disk.
var ErrInvalidArguments = errors.New("invalid arguments")

// ArgumentError is a user argument error with a message meant for display.
type ArgumentError struct {
	Msg string
}

// NewArgumentError formats an ArgumentError.
func NewArgumentError(format string, args ...any) *ArgumentError {
	return &ArgumentError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ArgumentError) Error() string { return e.Msg }

func (e *ArgumentError) Unwrap() error { return ErrInvalidArguments }

// ConflictError lists paths requested both as a file and as a directory.
type ConflictError struct {
	Paths []string
}

func (e *ConflictError) Error() string {
	return "Cannot create both file and a directory at:\n" + strings.Join(e.Paths, "\n")
}

func (e *ConflictError) Unwrap() error { return ErrInvalidArguments }

// HasTrailingSeparator reports whether path ends in a path separator.
func HasTrailingSeparator(path string) bool {
	return path != "" && os.IsPathSeparator(path[len(path)-1])
}

// Normalize strips trailing separators and cleans path. The root keeps its
// single separator.
func Normalize(path string) string {
	trimmed := strings.TrimRightFunc(path, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	if trimmed == "" {
		return string(filepath.Separator)
	}
	return filepath.Clean(trimmed)
}

// Classify turns a raw positional argument into a RequestedPath.
func Classify(raw string) RequestedPath {
	if HasTrailingSeparator(raw) {
		return RequestedPath{Path: Normalize(raw), Kind: KindDirectory, TrailingSeparator: true}
	}
	return RequestedPath{Path: Normalize(raw), Kind: KindFile}
}

// CombineInputPaths partitions raw arguments into directory and file requests.
//
// Positional paths ending in a separator are directories, everything else is
// a file. Paths given with --directory are directories either way. A --file
// path ending in a separator is rejected before anything else is looked at.
func CombineInputPaths(rawPaths, rawFiles, rawDirectories []string) (PathSet, error) {
	for _, raw := range rawFiles {
		if HasTrailingSeparator(raw) {
			return PathSet{}, NewArgumentError(
				"File path %q cannot end with a %c when --file option is used.",
				raw, filepath.Separator)
		}
	}

	all := make([]string, 0, len(rawPaths)+len(rawFiles)+len(rawDirectories))
	all = append(all, rawPaths...)
	all = append(all, rawFiles...)
	all = append(all, rawDirectories...)
	for _, raw := range all {
		if raw == "" {
			return PathSet{}, NewArgumentError("Path cannot be empty.")
		}
	}

	directories := newKeyedSet()
	files := newKeyedSet()

	for _, raw := range rawPaths {
		req := Classify(raw)
		if req.Kind == KindDirectory {
			directories.add(req.Path)
		} else {
			files.add(req.Path)
		}
	}
	for _, raw := range rawFiles {
		files.add(Normalize(raw))
	}
	for _, raw := range rawDirectories {
		directories.add(Normalize(raw))
	}

	return PathSet{
		Directories: directories.sorted(),
		Files:       files.sorted(),
	}, nil
}

// PathKey identifies the location a path names: its absolute form, so "a",
// "./a" and "/cwd/a" share one key. Symlinks are not resolved.
func PathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// keyedSet collapses paths naming the same location, keeping the first
// spelling seen for display.
type keyedSet map[string]string

func newKeyedSet() keyedSet { return make(keyedSet) }

func (s keyedSet) add(path string) {
	key := PathKey(path)
	if _, ok := s[key]; !ok {
		s[key] = path
	}
}

func (s keyedSet) sorted() []string {
	var out []string
	for _, path := range s {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

// Ancestors returns path followed by each of its parents, nearest first. It
// stops before the filesystem root, "." and the empty path.
func Ancestors(path string) []string {
	var out []string
	for p := filepath.Clean(path); !isTop(p); p = filepath.Dir(p) {
		out = append(out, p)
	}
	return out
}

func isTop(p string) bool {
	return p == "" || p == "." || filepath.Dir(p) == p
}

// ComputeAncestorClosure collects every directory implied by set: each
// requested directory with all its ancestors, and each requested file's
// parent with all its ancestors. A requested directory that is the root or
// "." is kept so it is looked up like any other.
func ComputeAncestorClosure(set PathSet) AncestorClosure {
	closure := make(map[string]struct{})
	for _, dir := range set.Directories {
		if dir != "" && isTop(dir) {
			closure[dir] = struct{}{}
			continue
		}
		for _, a := range Ancestors(dir) {
			closure[a] = struct{}{}
		}
	}
	for _, file := range set.Files {
		for _, a := range Ancestors(filepath.Dir(file)) {
			closure[a] = struct{}{}
		}
	}
	return AncestorClosure(sortedKeys(closure))
}

// Contains reports whether path is part of the closure.
func (c AncestorClosure) Contains(path string) bool {
	i := sort.SearchStrings(c, path)
	return i < len(c) && c[i] == path
}

// CheckArgumentConflicts fails with a *ConflictError when any requested file
// is also a directory the batch needs, however either is spelled. It
// performs no filesystem I/O.
func CheckArgumentConflicts(closure AncestorClosure, files []string) error {
	keys := make(map[string]struct{}, len(closure))
	for _, dir := range closure {
		keys[PathKey(dir)] = struct{}{}
	}

	var clashing []string
	for _, file := range files {
		if _, ok := keys[PathKey(file)]; ok {
			clashing = append(clashing, file)
		}
	}
	if len(clashing) == 0 {
		return nil
	}
	sort.Strings(clashing)
	return &ConflictError{Paths: clashing}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
