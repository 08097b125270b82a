package mediaimport

import (
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// musicVideoHandler imports music videos, a flat type with no hierarchy.
type musicVideoHandler struct {
	*baseHandler
}

func newMusicVideoHandler(base *baseHandler) *musicVideoHandler {
	base.mediaType = library.MediaTypeMusicVideo
	base.ignore = musicVideoIgnoreDifferences
	return &musicVideoHandler{baseHandler: base}
}

func (h *musicVideoHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	return h.addItem(imp, item)
}

func (h *musicVideoHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	return h.deleteItem(imp, item)
}

func (h *musicVideoHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}
