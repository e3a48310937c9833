package filesystem

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/taigrr/ds-store-no-more/internal/pathfilter"
)

var _ FileSystem = (*Memory)(nil)

func TestMemory_Walk(t *testing.T) {
	t.Run("returns files under root", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store", "/test/file.txt", "/other/.DS_Store")

		files, err := fs.Walk(context.Background(), "/test", nil)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(files) != 2 {
			t.Errorf("Walk() returned %d files, want 2: %v", len(files), files)
		}
	})

	t.Run("dot-dot prefixed children are under root", func(t *testing.T) {
		fs := NewMemory("/r/..cache/.DS_Store", "/r/a/.DS_Store", "/rest/.DS_Store", "/.DS_Store")

		files, err := fs.Walk(context.Background(), "/r", nil)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(files) != 2 || files[0] != "/r/..cache/.DS_Store" || files[1] != "/r/a/.DS_Store" {
			t.Errorf("Walk() = %v, want [/r/..cache/.DS_Store /r/a/.DS_Store]", files)
		}
	})

	t.Run("prunes ignored directories", func(t *testing.T) {
		fs := NewMemory(
			"/test/.DS_Store",
			"/test/node_modules/.DS_Store",
			"/test/node/.DS_Store",
		)

		files, err := fs.Walk(context.Background(), "/test", pathfilter.NewIgnoreSet([]string{"node_modules"}))
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		for _, f := range files {
			if strings.Contains(f, "node_modules") {
				t.Errorf("Walk() returned ignored path %q", f)
			}
		}
		if len(files) != 2 {
			t.Errorf("Walk() returned %d files, want 2: %v", len(files), files)
		}
	})

	t.Run("deleted files are not walked", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store", "/test/file.txt")

		if err := fs.Remove(context.Background(), "/test/.DS_Store"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}

		files, err := fs.Walk(context.Background(), "/test", nil)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		if len(files) != 1 || files[0] != "/test/file.txt" {
			t.Errorf("Walk() = %v, want [/test/file.txt]", files)
		}
	})

	t.Run("injected walk error", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store")
		fs.SetWalkError(ErrRootNotFound)

		if _, err := fs.Walk(context.Background(), "/test", nil); !errors.Is(err, ErrRootNotFound) {
			t.Errorf("Walk() error = %v, want ErrRootNotFound", err)
		}

		fs.SetWalkError(nil)
		if _, err := fs.Walk(context.Background(), "/test", nil); err != nil {
			t.Errorf("Walk() after clearing error = %v, want nil", err)
		}
		if got := fs.WalkCount(); got != 2 {
			t.Errorf("WalkCount() = %d, want 2", got)
		}
	})
}

func TestMemory_Remove(t *testing.T) {
	t.Run("marks file deleted", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store")

		if err := fs.Remove(context.Background(), "/test/.DS_Store"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if !fs.WasDeleted("/test/.DS_Store") {
			t.Error("WasDeleted() = false, want true")
		}
		if len(fs.Files()) != 0 {
			t.Errorf("Files() = %v, want empty", fs.Files())
		}
	})

	t.Run("fail on path", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store")
		fs.SetFailOn("/test/.DS_Store")

		err := fs.Remove(context.Background(), "/test/.DS_Store")
		if err == nil {
			t.Fatal("Remove() error = nil, want error")
		}
		if !errors.Is(err, ErrPermission) {
			t.Errorf("Remove() error = %v, want ErrPermission", err)
		}
		if !strings.Contains(err.Error(), "permission denied") {
			t.Errorf("error message %q should mention permission denied", err.Error())
		}

		fs.ClearFailOn()
		if err := fs.Remove(context.Background(), "/test/.DS_Store"); err != nil {
			t.Errorf("Remove() after ClearFailOn() error = %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		fs := NewMemory()

		if err := fs.Remove(context.Background(), "/test/.DS_Store"); !errors.Is(err, ErrNotExist) {
			t.Errorf("Remove() error = %v, want ErrNotExist", err)
		}
	})

	t.Run("second remove fails", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store")

		if err := fs.Remove(context.Background(), "/test/.DS_Store"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if err := fs.Remove(context.Background(), "/test/.DS_Store"); !errors.Is(err, ErrNotExist) {
			t.Errorf("second Remove() error = %v, want ErrNotExist", err)
		}
	})

	t.Run("add file restores deleted path", func(t *testing.T) {
		fs := NewMemory("/test/.DS_Store")
		fs.Remove(context.Background(), "/test/.DS_Store")
		fs.AddFile("/test/.DS_Store")

		if fs.WasDeleted("/test/.DS_Store") {
			t.Error("WasDeleted() = true after AddFile(), want false")
		}
		if len(fs.Files()) != 1 {
			t.Errorf("Files() = %v, want one file", fs.Files())
		}
	})
}
