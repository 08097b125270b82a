package mediaimport

import (
	"fmt"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// tvShowHandler imports tvshows. Shows are containers aggregated from any
// number of sources, each contributing a path link; removal follows the
// two-tier policy and also maintains the per-source path links.
type tvShowHandler struct {
	*baseHandler
}

func newTvShowHandler(base *baseHandler) *tvShowHandler {
	base.mediaType = library.MediaTypeTvShow
	base.ignore = tvShowIgnoreDifferences
	base.parentTypes = []library.MediaType{library.MediaTypeTvShow}
	return &tvShowHandler{baseHandler: base}
}

// FindMatchingLocalItem matches shows by title, and by year when both
// sides carry one.
func (h *tvShowHandler) FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item {
	for _, local := range localItems {
		if local.Title != incoming.Title {
			continue
		}
		if incoming.Year > 0 && local.Year > 0 && local.Year != incoming.Year {
			continue
		}
		return local
	}
	return nil
}

func (h *tvShowHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	// A show aggregated from several sources keeps one row; a new source
	// contributes its import tag and path link only.
	if existing := h.resolveParent(library.MediaTypeTvShow, item.Title, item.Year, item.Path); existing != nil {
		item.DbID = existing.DbID
		if err := h.sess.tx.LinkItemToImport(existing.DbID, imp.ID, library.MediaTypeTvShow); err != nil {
			return err
		}
		return h.addSourcePathLink(imp, item)
	}
	if err := h.addItem(imp, item); err != nil {
		return err
	}
	if err := h.addSourcePathLink(imp, item); err != nil {
		return err
	}
	h.sess.recordParent(item)
	return nil
}

// addSourcePathLink records the show's directory under this import's source
// so the path contribution can be withdrawn independently later.
func (h *tvShowHandler) addSourcePathLink(imp *registry.Import, item *library.Item) error {
	if item.Path == "" {
		return nil
	}
	sourcePathID, err := h.sess.sourcePath(imp)
	if err != nil {
		return err
	}
	pathID, err := h.sess.tx.RegisterPath(item.Path, &sourcePathID)
	if err != nil {
		return fmt.Errorf("register path for show %q: %w", item.Title, err)
	}
	if err := h.sess.tx.AddShowPath(item.DbID, pathID); err != nil {
		return fmt.Errorf("link show %q to path: %w", item.Title, err)
	}
	return nil
}

func (h *tvShowHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	removed, err := h.removeParent(imp, item, false, h.childFilter(item))
	if err != nil {
		return err
	}
	if removed {
		return h.removeShowPathRow(item)
	}
	return nil
}

func (h *tvShowHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}

func (h *tvShowHandler) CleanupImportedItems(imp *registry.Import) error {
	items, err := h.LocalItems(imp)
	if err != nil {
		return err
	}
	for _, item := range items {
		removed, err := h.removeParent(imp, item, true, h.childFilter(item))
		if err != nil {
			return err
		}
		if removed {
			if err := h.removeShowPathRow(item); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *tvShowHandler) childFilter(item *library.Item) func(importID *int64) library.ItemFilter {
	episode := library.MediaTypeEpisode
	return func(importID *int64) library.ItemFilter {
		return library.ItemFilter{MediaType: &episode, ShowID: &item.DbID, ImportID: importID}
	}
}

// removeShowPathRow drops the path row registered for a hard-deleted
// show's own directory. The show_paths links cascade with the show.
func (h *tvShowHandler) removeShowPathRow(item *library.Item) error {
	if item.Path == "" {
		return nil
	}
	p, err := h.sess.tx.FindPath(item.Path)
	if err != nil || p == nil {
		return err
	}
	if err := h.sess.tx.DeletePath(p.ID); err != nil {
		return fmt.Errorf("remove path for show %q: %w", item.Title, err)
	}
	return nil
}
