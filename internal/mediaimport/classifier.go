package mediaimport

import (
	"fmt"
	"log/slog"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// determineItemsChangeset turns the retrieved items of one media type into
// the full changeset to apply.
//
// In full mode (partial=false) the retrieved entries carry no tags: an
// item with no local match becomes Added, a matched item is classified by
// the handler as unchanged or Changed, and every local item no retrieved
// item matched becomes Removed.
//
// In partial mode the retriever pre-tagged each entry; the tags are
// reconciled against actual match presence: an untagged entry is treated
// like Added, an Added entry that matches a local item becomes Changed, and
// a Changed or Removed entry with no local match is dropped with a warning.
//
// With update-imported-items off, matched entries that are not tagged
// Removed are classified None without comparison, so existing rows are
// never overwritten.
func determineItemsChangeset(
	logger *slog.Logger,
	h Handler,
	imp *registry.Import,
	retrieved []ChangesetItem,
	localItems []*library.Item,
	partial bool,
) ([]ChangesetItem, error) {
	matched := make(map[int64]bool, len(localItems))
	var changeset []ChangesetItem

	for _, entry := range retrieved {
		if entry.Item == nil {
			logger.Warn("retrieved changeset entry without item", "import", imp.Describe())
			continue
		}
		local := h.FindMatchingLocalItem(imp, entry.Item, localItems)
		if local != nil {
			matched[local.DbID] = true
			if entry.Type != ChangesetRemoved && !imp.Settings.UpdateImportedItems {
				changeset = append(changeset, ChangesetItem{Type: ChangesetNone, Item: entry.Item, Local: local})
				continue
			}
		}

		if partial {
			reconciled, ok := reconcileTag(logger, h, imp, entry, local)
			if ok {
				changeset = append(changeset, reconciled)
			}
			continue
		}

		if local == nil {
			changeset = append(changeset, ChangesetItem{Type: ChangesetAdded, Item: entry.Item})
			continue
		}

		ct, err := h.DetermineChangeset(imp, entry.Item, local)
		if err != nil {
			return nil, fmt.Errorf("determine changeset for %q: %w", entry.Item.Label(), err)
		}
		if ct == ChangesetNone {
			changeset = append(changeset, ChangesetItem{Type: ChangesetNone, Item: entry.Item, Local: local})
			continue
		}
		h.PrepareImportedItem(imp, entry.Item, local)
		changeset = append(changeset, ChangesetItem{Type: ChangesetChanged, Item: entry.Item, Local: local})
	}

	if !partial {
		for _, local := range localItems {
			if !matched[local.DbID] {
				changeset = append(changeset, ChangesetItem{Type: ChangesetRemoved, Item: local, Local: local})
			}
		}
	}

	return changeset, nil
}

// reconcileTag checks a pre-tagged entry against match presence and fixes
// or drops tags that disagree with local state.
func reconcileTag(logger *slog.Logger, h Handler, imp *registry.Import, entry ChangesetItem, local *library.Item) (ChangesetItem, bool) {
	switch entry.Type {
	case ChangesetAdded, ChangesetNone:
		// Untagged entries carry no verdict from the source; match
		// presence decides, same as for Added.
		if local == nil {
			return ChangesetItem{Type: ChangesetAdded, Item: entry.Item}, true
		}
		// The source reported a new item we already know; treat as an
		// update to the existing row.
		h.PrepareImportedItem(imp, entry.Item, local)
		return ChangesetItem{Type: ChangesetChanged, Item: entry.Item, Local: local}, true

	case ChangesetChanged:
		if local == nil {
			logger.Warn("changed item has no local match, dropping",
				"item", entry.Item.Label(), "import", imp.Describe())
			return ChangesetItem{}, false
		}
		h.PrepareImportedItem(imp, entry.Item, local)
		return ChangesetItem{Type: ChangesetChanged, Item: entry.Item, Local: local}, true

	case ChangesetRemoved:
		if local == nil {
			logger.Warn("removed item has no local match, dropping",
				"item", entry.Item.Label(), "import", imp.Describe())
			return ChangesetItem{}, false
		}
		return ChangesetItem{Type: ChangesetRemoved, Item: local, Local: local}, true

	default:
		logger.Warn("unknown changeset tag, dropping",
			"tag", entry.Type, "item", entry.Item.Label(), "import", imp.Describe())
		return ChangesetItem{}, false
	}
}
