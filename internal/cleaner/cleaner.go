// Package cleaner runs a single cleanup pass: find junk files beneath a root
// and delete them, or report what would be deleted.
package cleaner

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/taigrr/ds-store-no-more/internal/filesystem"
	"github.com/taigrr/ds-store-no-more/internal/pathfilter"
	"github.com/taigrr/ds-store-no-more/internal/types"
)

// Cleaner pairs a FileSystem with a compiled pattern set and ignore set.
// It holds no per-pass state and can be reused for every monitor cycle.
type Cleaner struct {
	fs      filesystem.FileSystem
	matcher *pathfilter.PathFilter
	ignore  pathfilter.IgnoreSet
	logger  *log.Logger
}

// New compiles patterns and returns a Cleaner. A nil logger discards output.
func New(fs filesystem.FileSystem, patterns, ignore []string, logger *log.Logger) (*Cleaner, error) {
	matcher, err := pathfilter.New(patterns)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cleaner{
		fs:      fs,
		matcher: matcher,
		ignore:  pathfilter.NewIgnoreSet(ignore),
		logger:  logger,
	}, nil
}

// Scan returns the files beneath root whose final path component matches.
// Directory components are never matched.
func (c *Cleaner) Scan(ctx context.Context, root string) ([]string, error) {
	files, err := c.fs.Walk(ctx, root, c.ignore)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, path := range files {
		if c.matcher.Matches(filepath.Base(path)) {
			matches = append(matches, path)
		}
	}

	c.logger.Debug("scan complete", "root", root, "files", len(files), "matches", len(matches))
	return matches, nil
}

// Clean scans root and removes every match. Under dryRun nothing is
// removed and every match counts as deleted. A failed removal is recorded
// in the result and the pass moves on; only a failed scan returns an error.
func (c *Cleaner) Clean(ctx context.Context, root string, dryRun bool) (types.CleanResult, error) {
	matches, err := c.Scan(ctx, root)
	if err != nil {
		return types.CleanResult{}, err
	}

	result := types.NewCleanResult(len(matches), dryRun)
	for _, path := range matches {
		if dryRun {
			c.logger.Info("would delete", "path", path)
			result.FilesDeleted++
			continue
		}

		if err := c.fs.Remove(ctx, path); err != nil {
			c.logger.Warn("failed to delete", "path", path, "err", err)
			result.FilesFailed = append(result.FilesFailed, types.FileFailure{
				Path:   path,
				Reason: err.Error(),
			})
			continue
		}

		c.logger.Info("deleted", "path", path)
		result.FilesDeleted++
	}

	return result, nil
}

// Patterns returns the compiled pattern set in order.
func (c *Cleaner) Patterns() []string {
	return c.matcher.Patterns()
}

// IgnoreDirs returns the ignored directory names, sorted.
func (c *Cleaner) IgnoreDirs() []string {
	return c.ignore.Names()
}
