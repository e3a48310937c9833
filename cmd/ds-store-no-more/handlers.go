package main

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrDeletionNotConfirmed is returned by the clean tool when neither
// dryRun nor confirm='yes' was given.
var ErrDeletionNotConfirmed = errors.New("deletion not confirmed")

type toolHandler struct {
	session *session
}

func (h *toolHandler) handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	root := h.session.config.RootDir

	matches, err := h.session.cleaner.Scan(ctx, root)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{Root: root}, err
	}

	out := ScanOutput{Root: root, Paths: matches, Total: len(matches)}
	if out.Paths == nil {
		out.Paths = []string{}
	}
	if input.Limit > 0 && len(matches) > input.Limit {
		out.Paths = matches[:input.Limit]
		out.Truncated = true
	}
	return nil, out, nil
}

func (h *toolHandler) handleClean(ctx context.Context, req *mcp.CallToolRequest, input CleanInput) (*mcp.CallToolResult, CleanOutput, error) {
	root := h.session.config.RootDir

	if !input.DryRun && input.Confirm != "yes" {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{Root: root},
			errors.WithHint(ErrDeletionNotConfirmed, "set confirm='yes' to delete, or dryRun=true to preview")
	}

	result, err := h.session.cleaner.Clean(ctx, root, input.DryRun)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CleanOutput{Root: root, DryRun: input.DryRun}, err
	}

	h.session.logger.Info("cleanup complete",
		"root", root,
		"found", result.FilesFound,
		"deleted", result.FilesDeleted,
		"failed", result.FailedCount(),
		"dry_run", result.DryRun,
	)

	return nil, CleanOutput{
		Root:         root,
		FilesFound:   result.FilesFound,
		FilesDeleted: result.FilesDeleted,
		FilesFailed:  result.FilesFailed,
		DryRun:       result.DryRun,
	}, nil
}
