package engine

import (
	"path/filepath"
	"strings"

	"github.com/danieljhkim/humanutils/internal/fsops"
)

// isWithin reports whether child is parent or lives below it. Both paths
// must be absolute and clean.
func isWithin(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// resolve returns the absolute path of p with symlinks resolved as far as
// the path exists. Missing trailing components are appended unchanged.
func (e *Engine) resolve(p string) (string, error) {
	canonical, err := e.fs.Canonical(p)
	if err == nil {
		return canonical, nil
	}
	if !fsops.IsNotExist(err) {
		return "", err
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	resolvedParent, err := e.resolve(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}

// displayPath renders p the way the tools print it: directories keep a
// trailing separator.
func displayPath(p string, dir bool) string {
	if dir && !strings.HasSuffix(p, string(filepath.Separator)) {
		return p + string(filepath.Separator)
	}
	return p
}
