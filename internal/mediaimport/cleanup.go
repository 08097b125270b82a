package mediaimport

import (
	"fmt"
	"log/slog"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// Cleaner garbage-collects empty hierarchical parents (seasons, tvshows,
// movie sets) left behind after synchronization or import removal. Each
// pass runs in its own transaction, never the one a synchronization run
// owns.
type Cleaner struct {
	store    *library.Store
	registry *registry.Store
	mgr      *Manager
	logger   *slog.Logger
}

// NewCleaner creates a cleanup engine.
func NewCleaner(store *library.Store, reg *registry.Store, mgr *Manager, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		store:    store,
		registry: reg,
		mgr:      mgr,
		logger:   logger.With("component", "cleanup"),
	}
}

// cleanupOrder visits children before their parents so an emptied season
// can free its show in the same pass.
var cleanupOrder = []library.MediaType{
	library.MediaTypeSeason,
	library.MediaTypeTvShow,
	library.MediaTypeVideoSet,
}

// CleanupImport removes parents with no remaining children linked to the
// import, honoring the two-tier policy for parents shared with other
// sources.
func (c *Cleaner) CleanupImport(imp *registry.Import) error {
	sess := newSession(c.store, c.logger)
	if src, err := c.registry.GetSource(imp.SourceID); err == nil {
		sess.basePath = src.BasePath
	}
	if err := sess.begin(); err != nil {
		return fmt.Errorf("cleanup %s: %w", imp.Describe(), err)
	}
	committed := false
	defer func() {
		if !committed {
			sess.rollback()
		}
	}()

	handlers := c.mgr.handlersFor(sess)
	for _, mt := range cleanupOrder {
		if !imp.ContainsMediaType(mt) {
			continue
		}
		h, err := handlers.Handler(mt)
		if err != nil {
			return err
		}
		if err := h.CleanupImportedItems(imp); err != nil {
			return fmt.Errorf("cleanup %s for %s: %w", mt, imp.Describe(), err)
		}
	}

	if err := sess.commit(); err != nil {
		return fmt.Errorf("commit cleanup for %s: %w", imp.Describe(), err)
	}
	committed = true
	c.logger.Info("cleanup finished", "import", imp.Describe())
	return nil
}

// removalOrder visits leaf types first so parent counts reflect the
// removals already applied in the same transaction.
var removalOrder = []library.MediaType{
	library.MediaTypeEpisode,
	library.MediaTypeMusicVideo,
	library.MediaTypeMovie,
	library.MediaTypeSeason,
	library.MediaTypeTvShow,
	library.MediaTypeVideoSet,
}

// RemoveImport deletes every item linked to the import, applying the
// two-tier policy to shared parents. Used when a source or import is
// deleted outright.
func (c *Cleaner) RemoveImport(imp *registry.Import, basePath string) error {
	sess := newSession(c.store, c.logger)
	sess.basePath = basePath
	if err := sess.begin(); err != nil {
		return fmt.Errorf("remove items of %s: %w", imp.Describe(), err)
	}
	committed := false
	defer func() {
		if !committed {
			sess.rollback()
		}
	}()

	handlers := c.mgr.handlersFor(sess)
	for _, mt := range removalOrder {
		if !imp.ContainsMediaType(mt) {
			continue
		}
		h, err := handlers.Handler(mt)
		if err != nil {
			return err
		}
		if err := h.RemoveImportedItems(imp); err != nil {
			return fmt.Errorf("remove %s items of %s: %w", mt, imp.Describe(), err)
		}
	}

	if err := sess.commit(); err != nil {
		return fmt.Errorf("commit removal for %s: %w", imp.Describe(), err)
	}
	committed = true
	c.logger.Info("import items removed", "import", imp.Describe())
	return nil
}
