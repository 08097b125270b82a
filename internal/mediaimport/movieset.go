package mediaimport

import (
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// movieSetHandler imports movie sets. A set is a pure container: it exists
// only as the parent of movies and is subject to the two-tier removal
// policy because several sources may contribute members to one set.
type movieSetHandler struct {
	*baseHandler
}

func newMovieSetHandler(base *baseHandler) *movieSetHandler {
	base.mediaType = library.MediaTypeVideoSet
	base.ignore = movieSetIgnoreDifferences
	base.parentTypes = []library.MediaType{library.MediaTypeVideoSet}
	return &movieSetHandler{baseHandler: base}
}

// FindMatchingLocalItem matches sets by title alone; sets carry no file
// path or year of their own.
func (h *movieSetHandler) FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item {
	for _, local := range localItems {
		if local.Title == incoming.Title {
			return local
		}
	}
	return nil
}

func (h *movieSetHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	// Another source may already have contributed this set; tag it for this
	// import instead of inserting a duplicate row.
	if existing := h.resolveParent(library.MediaTypeVideoSet, item.Title, 0, item.Path); existing != nil {
		item.DbID = existing.DbID
		return h.sess.tx.LinkItemToImport(existing.DbID, imp.ID, library.MediaTypeVideoSet)
	}
	if err := h.addItem(imp, item); err != nil {
		return err
	}
	h.sess.recordParent(item)
	return nil
}

func (h *movieSetHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	_, err := h.removeParent(imp, item, false, h.childFilter(item))
	return err
}

func (h *movieSetHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}

func (h *movieSetHandler) CleanupImportedItems(imp *registry.Import) error {
	items, err := h.LocalItems(imp)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := h.removeParent(imp, item, true, h.childFilter(item)); err != nil {
			return err
		}
	}
	return nil
}

func (h *movieSetHandler) childFilter(item *library.Item) func(importID *int64) library.ItemFilter {
	movie := library.MediaTypeMovie
	return func(importID *int64) library.ItemFilter {
		return library.ItemFilter{MediaType: &movie, SetID: &item.DbID, ImportID: importID}
	}
}
