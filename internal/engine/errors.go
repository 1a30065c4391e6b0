package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/danieljhkim/humanutils/internal/planner"
)

var (
	// ErrValidation indicates a user argument error. No mutation is attempted.
	ErrValidation = planner.ErrInvalidArguments

	// ErrNotFound indicates a path that had to exist does not.
	ErrNotFound = errors.New("not found")

	// ErrDeclined indicates the user answered no to a confirmation prompt.
	ErrDeclined = errors.New("declined")

	// ErrNothingToDelete indicates none of the paths given to del exist.
	ErrNothingToDelete = errors.New("no files or directories can be removed")
)

// PathError binds an I/O failure to the path it happened on.
type PathError struct {
	Op   string
	Path string
	Kind planner.Kind
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Is makes a missing path match ErrNotFound.
func (e *PathError) Is(target error) bool {
	return target == ErrNotFound && errors.Is(e.Err, fs.ErrNotExist)
}

// newPathError strips the os error wrappers so the cause reads
// "no such file or directory" instead of repeating the path.
func newPathError(op, path string, kind planner.Kind, err error) *PathError {
	var pe *fs.PathError
	var le *os.LinkError
	switch {
	case errors.As(err, &pe):
		err = pe.Err
	case errors.As(err, &le):
		err = le.Err
	}
	return &PathError{Op: op, Path: path, Kind: kind, Err: err}
}
