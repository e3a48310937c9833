// Package filesystem provides the traversal and deletion operations the
// cleaner runs against.
package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/taigrr/ds-store-no-more/internal/pathfilter"
)

var (
	// ErrRootNotFound is returned by Walk when the root does not exist.
	ErrRootNotFound = errors.New("root directory not found")
	// ErrNotDirectory is returned by Walk when the root is not a directory.
	ErrNotDirectory = errors.New("root is not a directory")
	// ErrNotExist is matched by Remove failures for absent files.
	ErrNotExist = errors.New("file does not exist")
	// ErrPermission is matched by Remove failures caused by access rules.
	ErrPermission = errors.New("permission denied")
	// ErrIsDirectory is returned by Remove when asked to delete a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileSystem is the capability set the cleaner needs.
type FileSystem interface {
	// Walk returns every regular file beneath root. Directories named in
	// ignore are not descended into and symbolic links are never followed.
	Walk(ctx context.Context, root string, ignore pathfilter.IgnoreSet) ([]string, error)

	// Remove deletes exactly one file.
	Remove(ctx context.Context, path string) error
}

// OS implements FileSystem on the host filesystem.
type OS struct{}

// NewOS creates a host-backed FileSystem.
func NewOS() *OS {
	return &OS{}
}

// Walk enumerates regular files under root. Entries that cannot be read are
// skipped; only a missing, unreadable or non-directory root is an error.
func (o *OS) Walk(ctx context.Context, root string, ignore pathfilter.IgnoreSet) ([]string, error) {
	root, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && ignore.Contains(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks report ModeSymlink here and are dropped with other
		// non-regular entries.
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, errors.Wrapf(err, "walk %s", root)
	}

	return files, nil
}

// Remove deletes a single file. The context is not consulted: a deletion
// that has been dispatched always runs.
func (o *OS) Remove(_ context.Context, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return classify(err)
	}
	if info.IsDir() {
		return errors.Wrapf(ErrIsDirectory, "remove %s", path)
	}

	if err := os.Remove(path); err != nil {
		return classify(err)
	}
	return nil
}

// resolveRoot validates root. A root that is itself a symlink is resolved
// once, so links passed explicitly by the operator still work.
func resolveRoot(root string) (string, error) {
	info, err := os.Lstat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errors.Wrapf(ErrRootNotFound, "walk %s", root)
		}
		return "", errors.Wrapf(err, "walk %s", root)
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(root)
		if err != nil {
			return "", errors.Wrapf(ErrRootNotFound, "walk %s", root)
		}
		root = resolved
		if info, err = os.Stat(root); err != nil {
			return "", errors.Wrapf(err, "walk %s", root)
		}
	}

	if !info.IsDir() {
		return "", errors.Wrapf(ErrNotDirectory, "walk %s", root)
	}
	return root, nil
}

// classify marks os errors with the package sentinels while keeping the
// original message.
func classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.Mark(err, ErrNotExist)
	case errors.Is(err, fs.ErrPermission):
		return errors.Mark(err, ErrPermission)
	default:
		return err
	}
}
