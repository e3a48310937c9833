package filesystem

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/taigrr/ds-store-no-more/internal/pathfilter"
)

// Memory is an in-memory FileSystem for tests. It holds a fixed file set,
// tracks deletions, and can be told to fail one path or every walk.
type Memory struct {
	mu      sync.Mutex
	files   []string
	deleted map[string]bool
	failOn  string
	walkErr error
	walks   int
}

// NewMemory creates a Memory populated with files.
func NewMemory(files ...string) *Memory {
	m := &Memory{deleted: make(map[string]bool)}
	for _, f := range files {
		m.files = append(m.files, filepath.Clean(f))
	}
	return m
}

// AddFile adds path, or restores it if it was deleted.
func (m *Memory) AddFile(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if m.deleted[path] {
		delete(m.deleted, path)
		return
	}
	for _, f := range m.files {
		if f == path {
			return
		}
	}
	m.files = append(m.files, path)
}

// SetFailOn makes Remove fail with a permission error for path.
func (m *Memory) SetFailOn(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn = filepath.Clean(path)
}

// ClearFailOn removes any injected Remove failure.
func (m *Memory) ClearFailOn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn = ""
}

// SetWalkError makes every Walk fail with err until cleared with nil.
func (m *Memory) SetWalkError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.walkErr = err
}

// WasDeleted reports whether Remove succeeded for path.
func (m *Memory) WasDeleted(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleted[filepath.Clean(path)]
}

// Files returns the paths that currently exist.
func (m *Memory) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existing()
}

// WalkCount returns how many times Walk has been called.
func (m *Memory) WalkCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.walks
}

// Walk returns the existing files beneath root, pruning ignored directories
// between root and each file.
func (m *Memory) Walk(ctx context.Context, root string, ignore pathfilter.IgnoreSet) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.walks++
	if m.walkErr != nil {
		return nil, m.walkErr
	}

	root = filepath.Clean(root)
	var files []string
	for _, f := range m.existing() {
		rel, err := filepath.Rel(root, f)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if ignoredComponent(filepath.Dir(rel), ignore) {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// Remove marks path as deleted. Absent paths and the SetFailOn path fail.
func (m *Memory) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if m.failOn != "" && path == m.failOn {
		return errors.Mark(errors.Newf("remove %s: permission denied", path), ErrPermission)
	}
	if !m.exists(path) {
		return errors.Mark(errors.Newf("remove %s: no such file or directory", path), ErrNotExist)
	}

	m.deleted[path] = true
	return nil
}

func (m *Memory) exists(path string) bool {
	if m.deleted[path] {
		return false
	}
	for _, f := range m.files {
		if f == path {
			return true
		}
	}
	return false
}

func (m *Memory) existing() []string {
	out := make([]string, 0, len(m.files))
	for _, f := range m.files {
		if !m.deleted[f] {
			out = append(out, f)
		}
	}
	return out
}

func ignoredComponent(dir string, ignore pathfilter.IgnoreSet) bool {
	if dir == "." || len(ignore) == 0 {
		return false
	}
	for _, part := range strings.Split(dir, string(filepath.Separator)) {
		if ignore.Contains(part) {
			return true
		}
	}
	return false
}
