// Package monitor drives repeated cleanup passes on a fixed interval until
// the session times out or is cancelled.
package monitor

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taigrr/ds-store-no-more/internal/types"
)

// minInterval replaces non-positive intervals; time.NewTicker panics on them.
const minInterval = time.Nanosecond

// Cleaner is the single operation the monitor repeats.
type Cleaner interface {
	Clean(ctx context.Context, root string, dryRun bool) (types.CleanResult, error)
}

// State is the lifecycle position of a Monitor.
type State int32

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StopReason records which event ended a session.
type StopReason int

const (
	NotStopped StopReason = iota
	StoppedTimeout
	StoppedCancelled
)

func (r StopReason) String() string {
	switch r {
	case StoppedTimeout:
		return "timeout"
	case StoppedCancelled:
		return "cancelled"
	default:
		return "running"
	}
}

// Options configures a monitor session.
type Options struct {
	// Interval is the tick period after the initial cycle.
	Interval time.Duration
	// Timeout bounds the whole session. Zero or negative means no bound.
	Timeout time.Duration
	// Logger receives cycle summaries. Nil discards them.
	Logger *log.Logger
	// OnCycle, if set, is called after every cycle with its 1-based number.
	OnCycle func(cycle int, result types.CleanResult, err error)
}

// Summary describes a finished session.
type Summary struct {
	Reason       StopReason
	Cycles       int
	FailedCycles int
}

// Monitor runs a Cleaner repeatedly against one CleanConfig.
type Monitor struct {
	cleaner Cleaner
	config  types.CleanConfig
	opts    Options
	logger  *log.Logger
	state   atomic.Int32
}

// New creates an idle Monitor.
func New(c Cleaner, config types.CleanConfig, opts Options) *Monitor {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Monitor{
		cleaner: c,
		config:  config,
		opts:    opts,
		logger:  logger,
	}
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	return State(m.state.Load())
}

// Run cleans once immediately, then once per tick, until ctx is cancelled
// or the timeout elapses. Both are only observed between cycles; a cycle
// that has started always runs to completion.
func (m *Monitor) Run(ctx context.Context) Summary {
	m.state.Store(int32(Running))
	defer m.state.Store(int32(Stopped))

	m.logger.Info("starting monitor",
		"root", m.config.RootDir,
		"interval", m.opts.Interval,
		"timeout", m.opts.Timeout,
		"dry_run", m.config.DryRun,
	)

	var deadline <-chan time.Time
	if m.opts.Timeout > 0 {
		timer := time.NewTimer(m.opts.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	var summary Summary
	m.runCycle(ctx, &summary)

	interval := m.opts.Interval
	if interval <= 0 {
		interval = minInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.stop(summary, StoppedCancelled)
		case <-deadline:
			return m.stop(summary, StoppedTimeout)
		case <-ticker.C:
			// A tick may be ready alongside a stop event; stop wins before
			// a fresh cycle starts.
			select {
			case <-ctx.Done():
				return m.stop(summary, StoppedCancelled)
			case <-deadline:
				return m.stop(summary, StoppedTimeout)
			default:
			}
			m.runCycle(ctx, &summary)
		}
	}
}

func (m *Monitor) runCycle(ctx context.Context, summary *Summary) {
	summary.Cycles++
	cycle := summary.Cycles

	result, err := m.cleaner.Clean(context.WithoutCancel(ctx), m.config.RootDir, m.config.DryRun)
	if err != nil {
		summary.FailedCycles++
		m.logger.Error("cleanup cycle failed", "cycle", cycle, "err", err)
	} else {
		m.logger.Info("cleanup cycle complete",
			"cycle", cycle,
			"found", result.FilesFound,
			"deleted", result.FilesDeleted,
			"failed", result.FailedCount(),
		)
	}

	if m.opts.OnCycle != nil {
		m.opts.OnCycle(cycle, result, err)
	}
}

func (m *Monitor) stop(summary Summary, reason StopReason) Summary {
	summary.Reason = reason
	switch reason {
	case StoppedTimeout:
		m.logger.Info("timeout reached, stopping monitor", "cycles", summary.Cycles)
	case StoppedCancelled:
		m.logger.Info("received shutdown signal, stopping monitor", "cycles", summary.Cycles)
	}
	return summary
}
