package main

import (
	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/taigrr/ds-store-no-more/internal/types"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <root_dir>",
		Short: "Serve scan and clean as MCP tools over stdio",
		Long: `serve starts a Model Context Protocol server on stdin/stdout. It
exposes a scan tool that lists matching files and a clean tool that
runs one pass. Deleting requires confirm='yes'; dryRun=true reports
without deleting. Logs go to stderr.`,
		Example: `ds-store-no-more serve ~/Projects --ignore node_modules`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "ds-store-no-more",
				Version: version,
			}, nil)

			registerTools(server, &toolHandler{session: s})

			s.logger.Info("serving MCP over stdio", "root", s.config.RootDir)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return errors.Wrap(err, "error running server")
			}
			return nil
		},
	}

	opts.bindMatch(cmd)

	return cmd
}

type (
	// ScanInput contains parameters for listing matches.
	ScanInput struct {
		Limit int `json:"limit,omitempty" jsonschema:"Maximum number of paths to return (default: all)"`
	}

	// ScanOutput contains the matching paths.
	ScanOutput struct {
		Root      string   `json:"root"`
		Paths     []string `json:"paths"`
		Total     int      `json:"total"`
		Truncated bool     `json:"truncated,omitempty"`
	}

	// CleanInput contains parameters for a cleanup pass.
	CleanInput struct {
		DryRun  bool   `json:"dryRun,omitempty" jsonschema:"Report matches without deleting (default: false)"`
		Confirm string `json:"confirm,omitempty" jsonschema:"Must be set to 'yes' to delete files"`
	}

	// CleanOutput contains the result of a cleanup pass.
	CleanOutput struct {
		Root         string              `json:"root"`
		FilesFound   int                 `json:"filesFound"`
		FilesDeleted int                 `json:"filesDeleted"`
		FilesFailed  []types.FileFailure `json:"filesFailed,omitempty"`
		DryRun       bool                `json:"dryRun"`
	}
)

func registerTools(server *mcp.Server, h *toolHandler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "List files beneath the served root whose names match the configured patterns (.DS_Store plus any extras). Never deletes.",
	}, h.handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clean",
		Description: "Run one cleanup pass over the served root. Set dryRun=true to only report, or confirm='yes' to delete. Per-file failures are listed, not fatal.",
	}, h.handleClean)
}
