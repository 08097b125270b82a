// Package server wires the daemon's background components together.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/handlers"
	"github.com/vmunix/mediasync/internal/scheduler"
)

// Runner manages the lifecycles of the event handlers, the auto-sync
// scheduler and the event log pruner.
type Runner struct {
	handlers  []handlers.Handler
	scheduler *scheduler.Scheduler
	eventLog  *events.EventLog
	retention time.Duration
	logger    *slog.Logger
}

// NewRunner creates a runner. Scheduler and event log may be nil when the
// corresponding component is disabled.
func NewRunner(hs []handlers.Handler, sched *scheduler.Scheduler, eventLog *events.EventLog, retention time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		handlers:  hs,
		scheduler: sched,
		eventLog:  eventLog,
		retention: retention,
		logger:    logger.With("component", "runner"),
	}
}

// Run starts all components and blocks until the context is canceled or
// a component fails.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, h := range r.handlers {
		h := h
		r.logger.Info("starting handler", "handler", h.Name())
		g.Go(func() error {
			err := h.Start(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	if r.scheduler != nil {
		r.scheduler.Start()
		g.Go(func() error {
			<-ctx.Done()
			return r.scheduler.Stop()
		})
	}

	if r.eventLog != nil && r.retention > 0 {
		g.Go(func() error {
			r.pruneEvents(ctx)
			return nil
		})
	}

	return g.Wait()
}

// pruneEvents trims the event log once at startup and then daily.
func (r *Runner) pruneEvents(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		n, err := r.eventLog.Prune(r.retention)
		if err != nil {
			r.logger.Error("event log prune failed", "error", err)
		} else if n > 0 {
			r.logger.Info("pruned event log", "removed", n, "retention", r.retention)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
