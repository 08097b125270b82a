package mediaimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// RunResult aggregates the outcome of one synchronization run.
type RunResult struct {
	RunID     string
	Added     int
	Updated   int
	Removed   int
	Unchanged int
	Failed    int
}

// Synchronizer drives import runs through their lifecycle phases. It owns
// the run transaction: either the whole run's changes become visible at
// commit, or none do. Runs for different imports may proceed concurrently;
// a second run for the same import is rejected while one is in flight.
type Synchronizer struct {
	store    *library.Store
	registry *registry.Store
	mgr      *Manager
	bus      *events.Bus
	logger   *slog.Logger

	mu     sync.Mutex
	active map[int64]bool
}

// NewSynchronizer creates a synchronizer.
func NewSynchronizer(store *library.Store, reg *registry.Store, mgr *Manager, bus *events.Bus, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		store:    store,
		registry: reg,
		mgr:      mgr,
		bus:      bus,
		logger:   logger.With("component", "sync"),
		active:   make(map[int64]bool),
	}
}

// Synchronize runs a full import: per media type of the group, retrieve
// incoming items, classify them against local state, and apply the
// changeset. Returns ErrSyncInFlight if a run for this import is already
// active.
func (s *Synchronizer) Synchronize(ctx context.Context, imp *registry.Import, retriever ItemRetriever) (*RunResult, error) {
	if err := imp.Validate(); err != nil {
		return nil, err
	}
	if err := s.mgr.CheckRequiredTypes(imp); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.active[imp.ID] {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSyncInFlight, imp.Describe())
	}
	s.active[imp.ID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.active, imp.ID)
		s.mu.Unlock()
	}()

	src, err := s.registry.GetSource(imp.SourceID)
	if err != nil {
		return nil, fmt.Errorf("load source for %s: %w", imp.Describe(), err)
	}

	runID := uuid.NewString()
	logger := s.logger.With("run", runID, "import", imp.Describe())
	result := &RunResult{RunID: runID}

	sess := newSession(s.store, logger)
	sess.basePath = src.BasePath
	if err := sess.begin(); err != nil {
		logger.Error("synchronisation failed", "error", err)
		return nil, fmt.Errorf("synchronize %s: %w", imp.Describe(), err)
	}
	committed := false
	defer func() {
		if !committed {
			sess.rollback()
		}
	}()

	handlers := s.mgr.handlersFor(sess)

	var started []Handler
	for _, mt := range imp.MediaTypes {
		h, err := handlers.Handler(mt)
		if err != nil {
			return nil, err
		}
		if err := h.StartSynchronisation(imp); err != nil {
			logger.Error("synchronisation failed", "mediatype", mt, "error", err)
			return nil, err
		}
		started = append(started, h)
	}

	// Announced only once every handler has started; a run that fails at
	// start never emits a started event without a finished pair.
	s.publish(ctx, events.NewScanStarted(imp.ID, imp.SourceID, runID))

	for _, h := range started {
		if err := s.syncMediaType(ctx, logger, h, imp, retriever, result); err != nil {
			logger.Error("synchronisation failed", "mediatype", h.MediaType(), "error", err)
			return nil, err
		}
	}

	for _, h := range started {
		if err := h.FinishSynchronisation(imp); err != nil {
			logger.Error("synchronisation failed", "mediatype", h.MediaType(), "error", err)
			return nil, err
		}
	}

	if err := sess.commit(); err != nil {
		logger.Error("synchronisation failed", "error", err)
		return nil, fmt.Errorf("commit %s run: %w", imp.Describe(), err)
	}
	committed = true

	now := time.Now()
	if err := s.registry.TouchImportSynced(imp.ID, now); err != nil {
		logger.Warn("record import sync time failed", "error", err)
	}
	if err := s.registry.TouchSourceSynced(imp.SourceID, now); err != nil {
		logger.Warn("record source sync time failed", "error", err)
	}

	s.publish(ctx, events.NewScanFinished(imp.ID, imp.SourceID, runID,
		result.Added, result.Updated, result.Removed, result.Failed))

	logger.Info("synchronisation finished",
		"added", result.Added, "updated", result.Updated,
		"removed", result.Removed, "unchanged", result.Unchanged,
		"failed", result.Failed)
	return result, nil
}

// syncMediaType runs the changeset phase for one media type and applies
// the resulting changes. Per-item write failures are logged and isolated;
// a failure while creating a parent aborts the run, since later children
// may depend on it.
func (s *Synchronizer) syncMediaType(ctx context.Context, logger *slog.Logger, h Handler, imp *registry.Import, retriever ItemRetriever, result *RunResult) error {
	localItems, err := h.LocalItems(imp)
	if err != nil {
		return err
	}

	if err := h.StartChangeset(imp); err != nil {
		return err
	}
	retrieved, partial, err := retriever.RetrieveItems(ctx, imp, h.MediaType())
	if err != nil {
		_ = h.FinishChangeset(imp)
		return fmt.Errorf("retrieve %s items for %s: %w", h.MediaType(), imp.Describe(), err)
	}
	changeset, err := determineItemsChangeset(logger, h, imp, retrieved, localItems, partial)
	if err != nil {
		_ = h.FinishChangeset(imp)
		return err
	}
	if err := h.FinishChangeset(imp); err != nil {
		return err
	}

	for _, entry := range changeset {
		switch entry.Type {
		case ChangesetAdded:
			if err := h.AddImportedItem(imp, entry.Item); err != nil {
				if errors.Is(err, ErrParentCreation) {
					return err
				}
				logger.Error("add item failed", "item", entry.Item.Label(), "error", err)
				result.Failed++
				continue
			}
			result.Added++
			s.publish(ctx, events.NewItemChange(events.TypeItemAdded, imp.ID, string(h.MediaType()), entry.Item.Label()))

		case ChangesetChanged:
			if err := h.UpdateImportedItem(imp, entry.Item); err != nil {
				logger.Error("update item failed", "item", entry.Item.Label(), "error", err)
				result.Failed++
				continue
			}
			result.Updated++
			s.publish(ctx, events.NewItemChange(events.TypeItemChanged, imp.ID, string(h.MediaType()), entry.Item.Label()))

		case ChangesetRemoved:
			if err := h.RemoveImportedItem(imp, entry.Item); err != nil {
				logger.Error("remove item failed", "item", entry.Item.Label(), "error", err)
				result.Failed++
				continue
			}
			result.Removed++
			s.publish(ctx, events.NewItemChange(events.TypeItemRemoved, imp.ID, string(h.MediaType()), entry.Item.Label()))

		default:
			result.Unchanged++
		}
	}
	return nil
}

func (s *Synchronizer) publish(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		s.logger.Warn("publish event failed", "type", e.EventType(), "error", err)
	}
}
