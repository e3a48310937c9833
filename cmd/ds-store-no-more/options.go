package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/taigrr/ds-store-no-more/internal/cleaner"
	"github.com/taigrr/ds-store-no-more/internal/config"
	"github.com/taigrr/ds-store-no-more/internal/filesystem"
	"github.com/taigrr/ds-store-no-more/internal/logging"
	"github.com/taigrr/ds-store-no-more/internal/types"
)

// options holds the flag values shared across subcommands.
type options struct {
	patterns   []string
	ignore     []string
	dryRun     bool
	verbose    bool
	logFormat  string
	logFile    string
	logMaxSize int
	configPath string
}

func (o *options) bindGlobal(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&o.logFormat, "log-format", string(logging.FormatHuman), "log output format: human or json")
	pf.StringVar(&o.logFile, "log-file", "", "also write logs to this file, rotated by size")
	pf.IntVar(&o.logMaxSize, "log-max-size", logging.DefaultMaxSizeMB, "log file size in MB before rotation")
	pf.StringVar(&o.configPath, "config", "", "YAML config file")
}

func (o *options) bindMatch(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayVarP(&o.patterns, "additional-pattern", "p", nil, "extra file name glob to delete (repeatable)")
	f.StringArrayVar(&o.ignore, "ignore", nil, "directory name to skip entirely (repeatable)")
}

func (o *options) bindDryRun(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.dryRun, "dry-run", "n", false, "report matches without deleting them")
}

// session is everything a subcommand needs after flags and config merge.
type session struct {
	config  types.CleanConfig
	file    *config.File
	logger  *logging.Logger
	cleaner *cleaner.Cleaner
}

// setup loads the config file, builds the logger and compiles the cleaner
// for root. Every failure here happens before any traversal.
func (o *options) setup(cmd *cobra.Command, root string) (*session, error) {
	var file *config.File
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return nil, errors.WithHint(err, "check the --config path and its YAML syntax")
		}
		file = f
	}

	logFormat, verbose, logFile := o.logFormat, o.verbose, o.logFile
	if file != nil {
		if !cmd.Flags().Changed("log-format") && file.LogFormat != "" {
			logFormat = file.LogFormat
		}
		verbose = verbose || file.Verbose
		if logFile == "" {
			logFile = file.LogFile
		}
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return nil, err
	}

	cfg := file.CleanConfig(root, o.patterns, o.ignore, o.dryRun)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{
		Verbose: verbose,
		Format:  format,
		File:    logFile,
		MaxSize: o.logMaxSize,
		Output:  cmd.ErrOrStderr(),
	})

	c, err := cleaner.New(filesystem.NewOS(), cfg.Patterns, cfg.IgnoreDirs, logger.Logger)
	if err != nil {
		logger.Close()
		return nil, errors.WithHint(err, "patterns use glob syntax: * ? [abc] [a-z]; other characters match literally")
	}

	logger.Debug("configuration loaded",
		"root", cfg.RootDir,
		"patterns", c.Patterns(),
		"ignore", c.IgnoreDirs(),
		"dry_run", cfg.DryRun,
	)

	return &session{
		config:  cfg,
		file:    file,
		logger:  logger,
		cleaner: c,
	}, nil
}

func (s *session) Close() error {
	return s.logger.Close()
}
