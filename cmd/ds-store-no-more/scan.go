package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan <root_dir>",
		Short:   "List matching files without deleting them",
		Example: `ds-store-no-more scan ~/Projects -p '*.bak'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			matches, err := s.cleaner.Scan(cmd.Context(), s.config.RootDir)
			if err != nil {
				return errors.WithHint(err, "the root directory must exist and be readable")
			}

			out := cmd.OutOrStdout()
			for _, path := range matches {
				fmt.Fprintln(out, path)
			}
			s.logger.Info("scan complete", "root", s.config.RootDir, "found", len(matches))
			return nil
		},
	}

	opts.bindMatch(cmd)

	return cmd
}
