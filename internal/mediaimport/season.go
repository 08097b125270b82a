package mediaimport

import (
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// seasonHandler imports seasons. A season belongs to a tvshow resolved (or
// synthesized) through the in-run show map, and is itself a container for
// episodes.
type seasonHandler struct {
	*baseHandler
}

func newSeasonHandler(base *baseHandler) *seasonHandler {
	base.mediaType = library.MediaTypeSeason
	base.required = []library.MediaType{library.MediaTypeTvShow}
	base.ignore = seasonIgnoreDifferences
	base.parentTypes = []library.MediaType{library.MediaTypeTvShow}
	return &seasonHandler{baseHandler: base}
}

// FindMatchingLocalItem matches seasons by show title and season number.
func (h *seasonHandler) FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item {
	for _, local := range localItems {
		if local.ShowTitle == incoming.ShowTitle && local.Season == incoming.Season {
			return local
		}
	}
	return nil
}

func (h *seasonHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	if item != nil && item.ShowID == nil {
		// The show's directory is one level above the season's.
		show, err := h.findOrCreateParent(imp, library.MediaTypeTvShow, item, item.ShowTitle, pathUp(item.Path, 1))
		if err != nil {
			return err
		}
		item.ShowID = &show.DbID
		if item.ShowTitle == "" {
			item.ShowTitle = show.Title
		}
	}
	return h.addItem(imp, item)
}

func (h *seasonHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	if item == nil || item.ShowID == nil {
		return h.deleteItem(imp, item)
	}
	_, err := h.removeParent(imp, item, false, h.childFilter(item))
	return err
}

func (h *seasonHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}

func (h *seasonHandler) CleanupImportedItems(imp *registry.Import) error {
	items, err := h.LocalItems(imp)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ShowID == nil {
			continue
		}
		if _, err := h.removeParent(imp, item, true, h.childFilter(item)); err != nil {
			return err
		}
	}
	return nil
}

func (h *seasonHandler) childFilter(item *library.Item) func(importID *int64) library.ItemFilter {
	episode := library.MediaTypeEpisode
	season := item.Season
	return func(importID *int64) library.ItemFilter {
		return library.ItemFilter{MediaType: &episode, ShowID: item.ShowID, Season: &season, ImportID: importID}
	}
}
