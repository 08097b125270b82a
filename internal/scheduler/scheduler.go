// Package scheduler periodically starts synchronization runs for imports
// whose trigger mode is auto.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

// SyncFunc starts a synchronization run for one import.
type SyncFunc func(ctx context.Context, imp *registry.Import) error

// Scheduler owns the periodic auto-sync job. A pass lists every import
// with trigger mode auto whose source is active and ready and runs them
// sequentially; a pass never overlaps with itself.
type Scheduler struct {
	gocron   gocron.Scheduler
	job      gocron.Job
	registry *registry.Store
	run      SyncFunc
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	lastRun *time.Time
	running bool
}

// New creates a scheduler ticking at the given interval.
func New(reg *registry.Store, run SyncFunc, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{
		gocron:   gs,
		registry: reg,
		run:      run,
		interval: interval,
		logger:   logger.With("component", "scheduler"),
	}

	job, err := gs.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runPass),
		gocron.WithName("auto-sync"),
	)
	if err != nil {
		return nil, fmt.Errorf("create auto-sync job: %w", err)
	}
	s.job = job
	return s, nil
}

// Start begins ticking. Runs happen in gocron's worker goroutines.
func (s *Scheduler) Start() {
	s.logger.Info("starting auto-sync scheduler", "interval", s.interval)
	s.gocron.Start()
}

// Stop shuts the scheduler down, waiting for a running pass to finish.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping auto-sync scheduler")
	return s.gocron.Shutdown()
}

// RunNow triggers a pass outside the regular schedule.
func (s *Scheduler) RunNow() {
	go s.runPass()
}

// LastRun returns when the most recent pass started, nil before the first.
func (s *Scheduler) LastRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

// NextRun returns the next scheduled pass time.
func (s *Scheduler) NextRun() (time.Time, error) {
	return s.job.NextRun()
}

func (s *Scheduler) runPass() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Debug("auto-sync pass already running, skipping")
		return
	}
	s.running = true
	started := time.Now()
	s.lastRun = &started
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	trigger := registry.TriggerAuto
	imports, err := s.registry.ListImports(registry.ImportFilter{Trigger: &trigger})
	if err != nil {
		s.logger.Error("failed to list auto imports", "error", err)
		return
	}

	for _, imp := range imports {
		src, err := s.registry.GetSource(imp.SourceID)
		if err != nil {
			s.logger.Warn("skipping import with unknown source",
				"import", imp.Describe(), "error", err)
			continue
		}
		if !src.Active || !src.Ready {
			s.logger.Debug("skipping import, source not ready",
				"import", imp.Describe(),
				"active", src.Active,
				"ready", src.Ready)
			continue
		}

		if err := s.run(context.Background(), imp); err != nil {
			if errors.Is(err, mediaimport.ErrSyncInFlight) {
				s.logger.Debug("sync already in flight", "import", imp.Describe())
				continue
			}
			s.logger.Error("auto-sync failed", "import", imp.Describe(), "error", err)
		}
	}

	s.logger.Debug("auto-sync pass finished",
		"imports", len(imports),
		"duration", time.Since(started))
}
