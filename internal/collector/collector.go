// Package collector produces snapshots of per-connection statistics and
// delivers them to the dashboard over a channel. Sources are polled on a
// fixed interval; a failed poll is logged and skipped, the next tick simply
// tries again.
package collector

import (
	"context"
	"log/slog"
	"time"

	"connwatch/internal/stats"
)

// Source obtains one full set of per-connection statistics per poll.
type Source interface {
	Name() string
	Poll(ctx context.Context) ([]stats.ConnectionStats, error)
	Close() error
}

// Runner polls a source on an interval and sends timestamped snapshots on
// its channel. The channel is closed when Run returns, which the dashboard
// treats as a fatal collector disconnect.
type Runner struct {
	source   Source
	interval time.Duration
	out      chan stats.Snapshot
}

// NewRunner creates a runner for the given source and poll interval.
func NewRunner(source Source, interval time.Duration) *Runner {
	return &Runner{
		source:   source,
		interval: interval,
		out:      make(chan stats.Snapshot, 1),
	}
}

// Snapshots returns the delivery channel. Closed when the runner stops.
func (r *Runner) Snapshots() <-chan stats.Snapshot { return r.out }

// Run polls immediately, then on every tick, until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.out)
	defer func() {
		if err := r.source.Close(); err != nil {
			slog.Warn("close source", "source", r.source.Name(), "error", err)
		}
	}()

	r.poll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Runner) poll(ctx context.Context) {
	conns, err := r.source.Poll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("poll failed", "source", r.source.Name(), "error", err)
		return
	}

	snap := stats.Snapshot{Time: time.Now(), Connections: conns}
	select {
	case r.out <- snap:
	case <-ctx.Done():
	}
}
