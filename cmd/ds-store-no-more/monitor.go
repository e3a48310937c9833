package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/ds-store-no-more/internal/config"
	"github.com/taigrr/ds-store-no-more/internal/monitor"
)

const defaultIntervalSeconds = 60

func newMonitorCmd(opts *options) *cobra.Command {
	var intervalSeconds, timeoutSeconds int

	cmd := &cobra.Command{
		Use:   "monitor <root_dir>",
		Short: "Clean repeatedly until timeout or interrupt",
		Long: `monitor runs a cleanup pass immediately and then once per interval.
It stops when the timeout elapses or on SIGINT/SIGTERM. A pass that has
already started always finishes before the process exits.`,
		Example: `ds-store-no-more monitor ~/Projects -i 30 -t 3600`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			interval := time.Duration(intervalSeconds) * time.Second
			var timeout time.Duration
			if cmd.Flags().Changed("timeout") {
				timeout = time.Duration(timeoutSeconds) * time.Second
			}
			if s.file != nil {
				if !cmd.Flags().Changed("interval") && s.file.Interval > 0 {
					interval = s.file.Interval
				}
				if !cmd.Flags().Changed("timeout") {
					timeout = s.file.Timeout
				}
			}
			if err := config.ValidateSchedule(interval, timeout); err != nil {
				return err
			}

			m := monitor.New(s.cleaner, s.config, monitor.Options{
				Interval: interval,
				Timeout:  timeout,
				Logger:   s.logger.Logger,
			})
			summary := m.Run(cmd.Context())

			s.logger.Info("monitor stopped",
				"reason", summary.Reason,
				"cycles", summary.Cycles,
				"failed_cycles", summary.FailedCycles,
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&intervalSeconds, "interval", "i", defaultIntervalSeconds, "seconds between cleanup passes")
	cmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", 0, "stop after this many seconds (0 runs until interrupted)")
	opts.bindMatch(cmd)
	opts.bindDryRun(cmd)

	return cmd
}
