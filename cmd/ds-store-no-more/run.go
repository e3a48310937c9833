package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <root_dir>",
		Short:   "Run a single cleanup pass",
		Example: `ds-store-no-more run ~/Projects -p Thumbs.db --ignore .git`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.cleaner.Clean(cmd.Context(), s.config.RootDir, s.config.DryRun)
			if err != nil {
				s.logger.Error("cleanup failed", "root", s.config.RootDir, "err", err)
				return errors.WithHint(err, "the root directory must exist and be readable")
			}

			s.logger.Info("cleanup complete",
				"root", s.config.RootDir,
				"found", result.FilesFound,
				"deleted", result.FilesDeleted,
				"failed", result.FailedCount(),
				"dry_run", result.DryRun,
			)
			return nil
		},
	}

	opts.bindMatch(cmd)
	opts.bindDryRun(cmd)

	return cmd
}
