package mediaimport

import (
	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// episodeHandler imports episodes. Every episode must resolve its tvshow
// before it is persisted; a show unknown to the library is synthesized
// from fields inherited off the episode.
type episodeHandler struct {
	*baseHandler
}

func newEpisodeHandler(base *baseHandler) *episodeHandler {
	base.mediaType = library.MediaTypeEpisode
	base.required = []library.MediaType{library.MediaTypeTvShow}
	base.ignore = episodeIgnoreDifferences
	base.parentTypes = []library.MediaType{library.MediaTypeTvShow}
	return &episodeHandler{baseHandler: base}
}

// FindMatchingLocalItem matches episodes by show title plus season and
// episode number.
func (h *episodeHandler) FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item {
	for _, local := range localItems {
		if local.ShowTitle == incoming.ShowTitle &&
			local.Season == incoming.Season &&
			local.Episode == incoming.Episode {
			return local
		}
	}
	return nil
}

func (h *episodeHandler) AddImportedItem(imp *registry.Import, item *library.Item) error {
	if item != nil && item.ShowID == nil {
		// The show's directory is two levels above the episode file
		// (show/season/episode).
		show, err := h.findOrCreateParent(imp, library.MediaTypeTvShow, item, item.ShowTitle, pathUp(item.Path, 2))
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

func (h *episodeHandler) RemoveImportedItem(imp *registry.Import, item *library.Item) error {
	return h.deleteItem(imp, item)
}

func (h *episodeHandler) RemoveImportedItems(imp *registry.Import) error {
	return removeAll(h, imp)
}
