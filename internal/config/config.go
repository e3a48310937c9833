// Package config builds the immutable CleanConfig for an invocation, merging
// an optional YAML file with command-line values.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/ds-store-no-more/internal/types"
)

var (
	// ErrConfigRead is matched by failures to open or parse a config file.
	ErrConfigRead = errors.New("failed to read config file")
	// ErrInvalidConfig is matched by values that fail validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// File is the on-disk configuration. Durations use Go syntax ("90s", "5m").
type File struct {
	Patterns  []string      `yaml:"patterns"`
	Ignore    []string      `yaml:"ignore"`
	DryRun    bool          `yaml:"dry_run"`
	Interval  time.Duration `yaml:"interval"`
	Timeout   time.Duration `yaml:"timeout"`
	LogFormat string        `yaml:"log_format"`
	LogFile   string        `yaml:"log_file"`
	Verbose   bool          `yaml:"verbose"`
}

// Load reads and parses the YAML file at path. Unknown keys are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "config %s", path), ErrConfigRead)
	}
	return Parse(data)
}

// Parse decodes YAML config data. Empty input yields an empty File.
func Parse(data []byte) (*File, error) {
	f := &File{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Mark(errors.Wrap(err, "parse config"), ErrConfigRead)
	}

	if f.Interval < 0 || f.Timeout < 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "interval and timeout must not be negative")
	}
	return f, nil
}

// CleanConfig merges the file with command-line values. The default
// pattern comes first, then file patterns, then additional ones; ignore
// entries are unioned the same way and dry-run is enabled by either source.
// A nil File contributes nothing.
func (f *File) CleanConfig(root string, additional, ignore []string, dryRun bool) types.CleanConfig {
	var filePatterns, fileIgnore []string
	if f != nil {
		filePatterns = f.Patterns
		fileIgnore = f.Ignore
		dryRun = dryRun || f.DryRun
	}

	patterns := make([]string, 0, len(filePatterns)+len(additional))
	patterns = append(patterns, filePatterns...)
	patterns = append(patterns, additional...)

	dirs := make([]string, 0, len(fileIgnore)+len(ignore))
	dirs = append(dirs, fileIgnore...)
	dirs = append(dirs, ignore...)

	return NewCleanConfig(root, patterns, dirs, dryRun)
}

// NewCleanConfig returns a CleanConfig whose pattern set starts with
// types.DefaultPattern followed by additional in order.
func NewCleanConfig(root string, additional, ignore []string, dryRun bool) types.CleanConfig {
	patterns := make([]string, 0, len(additional)+1)
	patterns = append(patterns, types.DefaultPattern)
	patterns = append(patterns, additional...)

	return types.CleanConfig{
		RootDir:    root,
		Patterns:   patterns,
		IgnoreDirs: append([]string(nil), ignore...),
		DryRun:     dryRun,
	}
}

// Validate rejects configurations no pass could run with.
func Validate(cfg types.CleanConfig) error {
	if cfg.RootDir == "" {
		return errors.Wrap(ErrInvalidConfig, "root directory is required")
	}
	if len(cfg.Patterns) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one pattern is required")
	}
	return nil
}

// ValidateSchedule rejects negative monitor durations.
func ValidateSchedule(interval, timeout time.Duration) error {
	if interval < 0 {
		return errors.Wrapf(ErrInvalidConfig, "interval %s is negative", interval)
	}
	if timeout < 0 {
		return errors.Wrapf(ErrInvalidConfig, "timeout %s is negative", timeout)
	}
	return nil
}
