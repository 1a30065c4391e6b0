package integration

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/danieljhkim/humanutils/internal/engine"
	"github.com/danieljhkim/humanutils/internal/fsops"
)

// testFS is a filesystem implementation that tracks files in memory for testing
type testFS struct {
	files map[string][]byte
	dirs  map[string]bool
	cwd   string
}

func newTestFS(cwd string) *testFS {
	fsys := &testFS{
		files: make(map[string][]byte),
		dirs:  map[string]bool{"/": true},
		cwd:   cwd,
	}
	_ = fsys.MkdirAll(cwd, 0755)
	return fsys
}

func (m *testFS) abs(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.cwd, path)
	}
	return filepath.Clean(path)
}

// checkParents fails like the OS does when a parent of path is missing or
// is a file.
func (m *testFS) checkParents(op, path string) error {
	for p := filepath.Dir(path); ; p = filepath.Dir(p) {
		if _, isFile := m.files[p]; isFile {
			return &fs.PathError{Op: op, Path: path, Err: syscall.ENOTDIR}
		}
		if !m.dirs[p] {
			return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
		}
		if filepath.Dir(p) == p {
			return nil
		}
	}
}

func (m *testFS) Lstat(path string) (os.FileInfo, error) {
	path = m.abs(path)
	if m.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), mode: fs.ModeDir | 0755, isDir: true}, nil
	}
	if content, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(content)), mode: 0644}, nil
	}
	if err := m.checkParents("lstat", path); err != nil {
		return nil, err
	}
	return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
}

func (m *testFS) Stat(path string) (os.FileInfo, error) {
	return m.Lstat(path)
}

func (m *testFS) MkdirAll(path string, perm os.FileMode) error {
	path = m.abs(path)
	var missing []string
	for p := path; !m.dirs[p]; p = filepath.Dir(p) {
		if _, isFile := m.files[p]; isFile {
			return &fs.PathError{Op: "mkdir", Path: p, Err: syscall.ENOTDIR}
		}
		missing = append(missing, p)
	}
	for _, p := range missing {
		m.dirs[p] = true
	}
	return nil
}

func (m *testFS) Remove(path string) error {
	path = m.abs(path)
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if !m.dirs[path] {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if len(m.below(path)) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: syscall.ENOTEMPTY}
	}
	delete(m.dirs, path)
	return nil
}

func (m *testFS) RemoveAll(path string) error {
	path = m.abs(path)
	for _, p := range m.below(path) {
		delete(m.files, p)
		delete(m.dirs, p)
	}
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

// below lists every entry strictly inside dir.
func (m *testFS) below(dir string) []string {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []string
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	for p := range m.dirs {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (m *testFS) Rename(oldpath, newpath string) error {
	return m.transfer(oldpath, newpath, true)
}

func (m *testFS) Copy(src, dst string) error {
	return m.transfer(src, dst, false)
}

func (m *testFS) transfer(src, dst string, move bool) error {
	src, dst = m.abs(src), m.abs(dst)
	if _, err := m.Lstat(src); err != nil {
		return err
	}
	if err := m.checkParents("rename", dst); err != nil {
		return err
	}

	if content, ok := m.files[src]; ok {
		m.files[dst] = append([]byte(nil), content...)
		if move {
			delete(m.files, src)
		}
		return nil
	}

	entries := m.below(src)
	m.dirs[dst] = true
	for _, p := range entries {
		target := dst + strings.TrimPrefix(p, src)
		if m.dirs[p] {
			m.dirs[target] = true
		} else {
			m.files[target] = append([]byte(nil), m.files[p]...)
		}
	}
	if move {
		for _, p := range entries {
			delete(m.files, p)
			delete(m.dirs, p)
		}
		delete(m.dirs, src)
	}
	return nil
}

func (m *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	path = m.abs(path)
	if err := m.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *testFS) ReadFile(path string) ([]byte, error) {
	if content, ok := m.files[m.abs(path)]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

func (m *testFS) Canonical(path string) (string, error) {
	if _, err := m.Lstat(path); err != nil {
		return "", err
	}
	return m.abs(path), nil
}

func (m *testFS) Getwd() (string, error) {
	return m.cwd, nil
}

func (m *testFS) Chdir(dir string) error {
	dir = m.abs(dir)
	if !m.dirs[dir] {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}
	m.cwd = dir
	return nil
}

func (m *testFS) ValidateName(name string) error {
	return fsops.ValidateName(name)
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// setupTestEngine creates an engine over an in-memory filesystem whose
// working directory is /work.
func setupTestEngine(t *testing.T) (*engine.Engine, *testFS) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("in-memory filesystem uses slash-separated absolute paths")
	}
	fsys := newTestFS("/work")
	return engine.New(fsys, nil), fsys
}
