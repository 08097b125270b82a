package mediaimport

import (
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// movieHandler imports movies, resolving movie-set membership through the
// in-run set resolution map.
type movieHandler struct {
	*baseHandler
}

func newMovieHandler(base *baseHandler) *movieHandler {
	base.mediaType = library.MediaTypeMovie
	base.ignore = movieIgnoreDifferences
	base.parentTypes = []library.MediaType{library.MediaTypeVideoSet}
	return &movieHandler{baseHandler: base}
}

func (h *movieHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	if item != nil && item.SetTitle != "" && item.SetID == nil {
		set, err := h.findOrCreateParent(imp, library.MediaTypeVideoSet, item, item.SetTitle, pathUp(item.Path, 1))
		if err != nil {
			return err
		}
		item.SetID = &set.DbID
	}
	return h.addItem(imp, item)
}

func (h *movieHandler) UpdateImportedItem(imp *registry.Import, item *library.Item) error {
	if item != nil && item.SetTitle != "" && item.SetID == nil {
		set, err := h.findOrCreateParent(imp, library.MediaTypeVideoSet, item, item.SetTitle, pathUp(item.Path, 1))
		if err != nil {
			return err
		}
		item.SetID = &set.DbID
	}
	return h.updateItem(imp, item)
}

func (h *movieHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	return h.deleteItem(imp, item)
}

func (h *movieHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}
