// internal/handlers/cleanup.go
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/mediasync/internal/events"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

// CleanupConfig configures the cleanup handler.
type CleanupConfig struct {
	Enabled bool
}

// CleanupHandler garbage-collects empty hierarchical parents after each
// synchronization run finishes.
type CleanupHandler struct {
	*BaseHandler
	registry *registry.Store
	cleaner  *mediaimport.Cleaner
	config   CleanupConfig
}

// NewCleanupHandler creates a new cleanup handler.
func NewCleanupHandler(bus *events.Bus, reg *registry.Store, cleaner *mediaimport.Cleaner, config CleanupConfig, logger *slog.Logger) *CleanupHandler {
	return &CleanupHandler{
		BaseHandler: NewBaseHandler(bus, logger),
		registry:    reg,
		cleaner:     cleaner,
		config:      config,
	}
}

// Name returns the handler name.
func (h *CleanupHandler) Name() string {
	return "cleanup"
}

// Start begins processing events.
func (h *CleanupHandler) Start(ctx context.Context) error {
	scanFinished := h.Bus().Subscribe(events.EventScanFinished, 100)

	for {
		select {
		case e := <-scanFinished:
			if e == nil {
				return nil // Channel closed
			}
			h.handleScanFinished(e.(*events.ScanFinished))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handleScanFinished runs a cleanup pass for the import the scan belonged to.
// The pass uses its own transaction, so a failure here never affects the
// already-committed synchronization run.
func (h *CleanupHandler) handleScanFinished(e *events.ScanFinished) {
	if !h.config.Enabled {
		h.Logger().Debug("cleanup disabled, skipping", "import_id", e.EntityID())
		return
	}

	imp, err := h.registry.GetImport(e.EntityID())
	if err != nil {
		h.Logger().Error("failed to load import for cleanup",
			"import_id", e.EntityID(),
			"error", err)
		return
	}

	if err := h.cleaner.CleanupImport(imp); err != nil {
		h.Logger().Error("post-sync cleanup failed",
			"import", imp.Describe(),
			"error", err)
		return
	}

	h.Logger().Info("post-sync cleanup finished",
		"import", imp.Describe(),
		"source", e.Source)
}
