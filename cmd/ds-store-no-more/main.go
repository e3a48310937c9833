// Package main implements the ds-store-no-more command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(
		ctx,
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ds-store-no-more",
		Short: "Remove .DS_Store files from directory trees",
		Long: `ds-store-no-more finds and deletes .DS_Store files, and any other
file names matching extra glob patterns, beneath a root directory.
It can run a single pass, keep a tree clean on an interval, list
matches without deleting, or serve both operations over the Model
Context Protocol.`,
		Example: `ds-store-no-more run ~/Projects
ds-store-no-more run ~/Projects -p '*.bak' --ignore node_modules -n
ds-store-no-more monitor ~/Projects -i 30 -t 3600`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	opts.bindGlobal(cmd)

	cmd.AddCommand(
		newRunCmd(opts),
		newMonitorCmd(opts),
		newScanCmd(opts),
		newServeCmd(opts),
	)

	return cmd
}
