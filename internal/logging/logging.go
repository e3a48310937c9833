// Package logging builds the structured logger shared by every command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidFormat is returned by ParseFormat for unknown names.
var ErrInvalidFormat = errors.New("invalid log format")

// Format selects how log records are rendered.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// Rotation defaults for the optional log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// ParseFormat maps a flag value to a Format. The empty string is human.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHuman:
		return FormatHuman, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.WithHint(
			errors.Wrapf(ErrInvalidFormat, "%q", s),
			"supported formats are human and json",
		)
	}
}

// Options configures New.
type Options struct {
	Verbose bool
	Format  Format
	// File, when set, receives a copy of every record through a rotating writer.
	File string
	// MaxSize is the rotation threshold in megabytes. Zero uses DefaultMaxSizeMB.
	MaxSize int
	// Output is the primary destination. Nil means stderr.
	Output io.Writer
}

// Logger wraps a charm logger together with the rotating file it may own.
type Logger struct {
	*log.Logger
	file *lumberjack.Logger
}

// New returns a Logger at info level, or debug when Verbose is set.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		maxSize := opts.MaxSize
		if maxSize <= 0 {
			maxSize = DefaultMaxSizeMB
		}
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, file)
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	logOpts := log.Options{
		Level:           level,
		ReportTimestamp: true,
	}
	if opts.Format == FormatJSON {
		logOpts.Formatter = log.JSONFormatter
	}

	return &Logger{
		Logger: log.NewWithOptions(out, logOpts),
		file:   file,
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
