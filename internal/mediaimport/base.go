package mediaimport

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// baseHandler carries the machinery shared by every media-type handler:
// session access, local item retrieval, default matching, comparison, and
// the write helpers. Concrete handlers embed it and override the
// type-specific pieces.
type baseHandler struct {
	mediaType library.MediaType
	required  []library.MediaType
	ignore    map[string]struct{}

	// parentTypes lists the parent resolution maps this handler primes at
	// StartSynchronisation.
	parentTypes []library.MediaType

	sess   *session
	lookup handlerLookup
	logger *slog.Logger

	started         bool
	changesetActive bool
}

func (h *baseHandler) MediaType() library.MediaType { return h.mediaType }

func (h *baseHandler) RequiredMediaTypes() []library.MediaType { return h.required }

func (h *baseHandler) LocalItems(imp *registry.Import) ([]*library.Item, error) {
	if !h.sess.active() {
		return nil, fmt.Errorf("get local %s items: no open session", h.mediaType)
	}
	items, _, err := h.sess.tx.ListItems(library.ItemFilter{
		MediaType: &h.mediaType,
		ImportID:  &imp.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("get local %s items for %s: %w", h.mediaType, imp.Describe(), err)
	}
	return items, nil
}

func (h *baseHandler) StartChangeset(imp *registry.Import) error {
	if h.changesetActive {
		return fmt.Errorf("changeset for %s already started", imp.Describe())
	}
	h.changesetActive = true
	return nil
}

func (h *baseHandler) FinishChangeset(imp *registry.Import) error {
	h.changesetActive = false
	return nil
}

// FindMatchingLocalItem matches by file path first, then by unique id, then
// by title and year. Hierarchical types override this.
func (h *baseHandler) FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item {
	for _, local := range localItems {
		if incoming.Path != "" && local.Path == incoming.Path {
			return local
		}
	}
	for _, local := range localItems {
		if incoming.UniqueID != "" && local.UniqueID == incoming.UniqueID {
			return local
		}
	}
	for _, local := range localItems {
		if local.Title == incoming.Title && local.Year == incoming.Year {
			return local
		}
	}
	return nil
}

func (h *baseHandler) DetermineChangeset(imp *registry.Import, incoming, local *library.Item) (ChangesetType, error) {
	h.hydrate(local)
	equal := Compare(local, incoming,
		imp.Settings.UpdateImportedItems,
		imp.Settings.UpdatePlaybackFromSource,
		h.ignore,
	)
	if equal {
		return ChangesetNone, nil
	}
	return ChangesetChanged, nil
}

// hydrate refreshes lazily-loaded detail (playback state) on a local item.
// Failures are logged at warning level and never block the comparison.
func (h *baseHandler) hydrate(local *library.Item) {
	if local.FileID == nil {
		return
	}
	f, err := h.sess.tx.GetFile(*local.FileID)
	if err != nil {
		h.logger.Warn("hydrate item failed", "item", local.Label(), "error", err)
		return
	}
	local.PlayCount = f.PlayCount
	local.LastPlayed = f.LastPlayed
	local.ResumeSeconds = f.ResumeSeconds
}

func (h *baseHandler) PrepareImportedItem(imp *registry.Import, incoming, local *library.Item) {
	incoming.DbID = local.DbID
	incoming.FileID = local.FileID
	incoming.BasePath = local.BasePath
	incoming.ParentPathID = local.ParentPathID
	incoming.ShowID = local.ShowID
	incoming.SetID = local.SetID
	incoming.Enabled = local.Enabled
}

func (h *baseHandler) StartSynchronisation(imp *registry.Import) error {
	if !h.sess.active() {
		return fmt.Errorf("start %s synchronisation for %s: no open session", h.mediaType, imp.Describe())
	}
	for _, pt := range h.parentTypes {
		if err := h.sess.primeParents(pt); err != nil {
			return fmt.Errorf("start %s synchronisation for %s: %w", h.mediaType, imp.Describe(), err)
		}
	}
	h.started = true
	return nil
}

func (h *baseHandler) FinishSynchronisation(imp *registry.Import) error {
	if !h.started {
		return nil
	}
	h.started = false
	if err := h.sess.tx.SetItemsEnabled(imp.ID, h.mediaType, true); err != nil {
		return fmt.Errorf("finish %s synchronisation for %s: %w", h.mediaType, imp.Describe(), err)
	}
	return nil
}

func (h *baseHandler) SetImportedItemsEnabled(imp *registry.Import, enabled bool) error {
	if !h.sess.active() {
		return fmt.Errorf("set %s items enabled for %s: no open session", h.mediaType, imp.Describe())
	}
	return h.sess.tx.SetItemsEnabled(imp.ID, h.mediaType, enabled)
}

// addItem persists an item with its path registration, file record, and
// import link. Shared by the concrete handlers' Add implementations.
func (h *baseHandler) addItem(imp *registry.Import, item *library.Item) error {
	if item == nil {
		return fmt.Errorf("add %s item for %s: nil item", h.mediaType, imp.Describe())
	}
	sourcePathID, err := h.sess.sourcePath(imp)
	if err != nil {
		return err
	}
	item.BasePath = h.sess.basePath
	item.ParentPathID = &sourcePathID

	if item.Path != "" && item.FileID == nil && !h.mediaType.IsContainer() {
		dir, file := splitItemPath(item.Path)
		pathID, err := h.sess.tx.RegisterPath(dir, &sourcePathID)
		if err != nil {
			return fmt.Errorf("register path for %q: %w", item.Label(), err)
		}
		f := &library.File{
			PathID:        pathID,
			Filename:      file,
			PlayCount:     item.PlayCount,
			LastPlayed:    item.LastPlayed,
			ResumeSeconds: item.ResumeSeconds,
		}
		if err := h.sess.tx.AddFile(f); err != nil {
			return fmt.Errorf("add file for %q: %w", item.Label(), err)
		}
		item.FileID = &f.ID
	}

	item.Enabled = true
	if err := h.sess.tx.AddItem(item); err != nil {
		return fmt.Errorf("add %s %q for %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
	}
	if item.DbID <= 0 {
		return fmt.Errorf("add %s %q for %s: no id assigned", h.mediaType, item.Label(), imp.Describe())
	}
	if err := h.sess.tx.LinkItemToImport(item.DbID, imp.ID, h.mediaType); err != nil {
		return fmt.Errorf("link %s %q to %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
	}
	return nil
}

// updateItem overwrites an existing item and, when the import settings ask
// for it, its file's playback state.
func (h *baseHandler) updateItem(imp *registry.Import, item *library.Item) error {
	if item == nil || item.DbID <= 0 {
		return fmt.Errorf("update %s item for %s: missing db id", h.mediaType, imp.Describe())
	}
	if err := h.sess.tx.UpdateItem(item); err != nil {
		return fmt.Errorf("update %s %q for %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
	}
	if imp.Settings.UpdatePlaybackFromSource && item.FileID != nil {
		if err := h.sess.tx.UpdateFilePlayback(*item.FileID, item.PlayCount, item.LastPlayed, item.ResumeSeconds); err != nil {
			return fmt.Errorf("update playback for %q: %w", item.Label(), err)
		}
	}
	return nil
}

// deleteItem removes a leaf item and its file record.
func (h *baseHandler) deleteItem(imp *registry.Import, item *library.Item) error {
	if item == nil || item.DbID <= 0 {
		return fmt.Errorf("remove %s item for %s: missing db id", h.mediaType, imp.Describe())
	}
	if err := h.sess.tx.DeleteItem(item.DbID); err != nil {
		return fmt.Errorf("remove %s %q for %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
	}
	if item.FileID != nil {
		if err := h.sess.tx.DeleteFile(*item.FileID); err != nil {
			return fmt.Errorf("remove file for %q: %w", item.Label(), err)
		}
	}
	return nil
}

// UpdateImportedItem is the default update path; type-specific handlers
// layer parent bookkeeping on top where needed.
func (h *baseHandler) UpdateImportedItem(imp *registry.Import, item *library.Item) error {
	return h.updateItem(imp, item)
}

// CleanupImportedItems is a no-op for leaf types; container handlers
// override it with the two-tier empty-parent collection.
func (h *baseHandler) CleanupImportedItems(imp *registry.Import) error {
	return nil
}

// removeAll is the default bulk removal: iterate the import's local items
// and remove them one by one through the handler's own RemoveImportedItem.
func removeAll(h Handler, imp *registry.Import) error {
	items, err := h.LocalItems(imp)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := h.RemoveImportedItem(imp, it); err != nil {
			return err
		}
	}
	return nil
}

// removeParent applies the two-tier removal policy for hierarchical
// parents (tvshow, season, set). childFilter must select the parent's
// children; importID narrows it to children linked to one import.
//
// With onlyIfEmpty the parent survives while this import still has
// children under it. When other imports or local content still reference
// the parent, only this import's tag (and any exclusively-owned secondary
// path link) is removed; the parent row itself is deleted only when its
// last children belonged to this import. The returned bool reports whether
// the parent row was deleted.
func (h *baseHandler) removeParent(imp *registry.Import, item *library.Item, onlyIfEmpty bool, childFilter func(importID *int64) library.ItemFilter) (bool, error) {
	importCount, err := h.sess.tx.CountItems(childFilter(&imp.ID))
	if err != nil {
		return false, fmt.Errorf("count %s children of %q: %w", h.mediaType, item.Label(), err)
	}
	if onlyIfEmpty && importCount > 0 {
		return false, nil
	}

	allCount, err := h.sess.tx.CountItems(childFilter(nil))
	if err != nil {
		return false, fmt.Errorf("count all children of %q: %w", item.Label(), err)
	}

	if allCount > importCount {
		if err := h.sess.tx.UnlinkItemFromImport(item.DbID, imp.ID); err != nil {
			return false, fmt.Errorf("unlink %s %q from %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
		}
		return false, h.removeSecondaryPath(imp, item)
	}

	if err := h.sess.tx.DeleteItem(item.DbID); err != nil {
		return false, fmt.Errorf("remove %s %q for %s: %w", h.mediaType, item.Label(), imp.Describe(), err)
	}
	return true, nil
}

// removeSecondaryPath drops a surviving parent's path links that descend
// from this import's source. Only tvshows carry per-source path links.
func (h *baseHandler) removeSecondaryPath(imp *registry.Import, item *library.Item) error {
	if h.mediaType != library.MediaTypeTvShow || h.sess.basePath == "" {
		return nil
	}
	pathIDs, err := h.sess.tx.ListShowPaths(item.DbID)
	if err != nil {
		return fmt.Errorf("list %q path links: %w", item.Label(), err)
	}
	for _, id := range pathIDs {
		p, err := h.sess.tx.GetPath(id)
		if err != nil {
			return fmt.Errorf("load path link of %q: %w", item.Label(), err)
		}
		if !strings.HasPrefix(p.Path, h.sess.basePath) {
			continue
		}
		if err := h.sess.tx.RemoveShowPath(item.DbID, id); err != nil {
			return fmt.Errorf("remove %q path link: %w", item.Label(), err)
		}
		if err := h.sess.tx.DeletePath(id); err != nil {
			return fmt.Errorf("remove %q path: %w", item.Label(), err)
		}
	}
	return nil
}

// splitItemPath separates an item path into its directory (with trailing
// separator) and filename.
func splitItemPath(p string) (string, string) {
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return "", p
	}
	return p[:idx+1], p[idx+1:]
}

// pathUp walks a path up the given number of hierarchy levels, preserving
// the trailing separator. Scheme prefixes like "smb://host/" are never
// climbed past.
func pathUp(p string, levels int) string {
	for i := 0; i < levels; i++ {
		trimmed := strings.TrimSuffix(p, "/")
		idx := strings.LastIndex(trimmed, "/")
		if idx < 0 {
			return p
		}
		parent := trimmed[:idx+1]
		if strings.HasSuffix(parent, "//") {
			return p
		}
		p = parent
	}
	return p
}
