package mediaimport

import (
	"fmt"
	"log/slog"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/registry"
)

// Handler is the per-media-type import capability contract. One handler
// exists per media type within a run; all handlers of a run share its
// session and transaction.
type Handler interface {
	// MediaType is the single type this handler imports.
	MediaType() library.MediaType

	// RequiredMediaTypes lists types that must be part of the same import
	// group (an episode import without its tvshow is rejected upstream).
	RequiredMediaTypes() []library.MediaType

	// LocalItems returns every item previously persisted under this
	// (import, mediaType) link.
	LocalItems(imp *registry.Import) ([]*library.Item, error)

	// StartChangeset and FinishChangeset bracket a batch comparison pass.
	// Callers must pair them.
	StartChangeset(imp *registry.Import) error
	FinishChangeset(imp *registry.Import) error

	// FindMatchingLocalItem resolves the identity of an incoming item
	// among the local items. Returns nil when there is no match; absence
	// is not an error.
	FindMatchingLocalItem(imp *registry.Import, incoming *library.Item, localItems []*library.Item) *library.Item

	// DetermineChangeset classifies a matched pair as unchanged or
	// changed. Added and removed are decided by the caller from match
	// presence, never by this method.
	DetermineChangeset(imp *registry.Import, incoming, local *library.Item) (ChangesetType, error)

	// PrepareImportedItem copies identity fields (db id, file id, parent
	// ids, base path) from the matched local item onto the incoming item
	// so a later update writes to the correct row.
	PrepareImportedItem(imp *registry.Import, incoming, local *library.Item)

	// StartSynchronisation and FinishSynchronisation bracket a run for
	// this media type. Finish must only be called if Start succeeded.
	StartSynchronisation(imp *registry.Import) error
	FinishSynchronisation(imp *registry.Import) error

	// AddImportedItem persists a new item, resolving or creating required
	// parent entities first, and tags it with the (import, mediaType)
	// link.
	AddImportedItem(imp *registry.Import, item *library.Item) error

	// UpdateImportedItem overwrites an existing item; requires a valid
	// DbID on the item.
	UpdateImportedItem(imp *registry.Import, item *library.Item) error

	// RemoveImportedItem deletes one item; hierarchical parents apply the
	// two-tier removal policy.
	RemoveImportedItem(imp *registry.Import, item *library.Item) error

	// RemoveImportedItems deletes every item linked to this import.
	RemoveImportedItems(imp *registry.Import) error

	// CleanupImportedItems garbage-collects empty parents after a run.
	// It must run in its own transaction, never the run transaction.
	CleanupImportedItems(imp *registry.Import) error

	// SetImportedItemsEnabled toggles visibility of all linked items.
	SetImportedItemsEnabled(imp *registry.Import, enabled bool) error
}

// handlerLookup resolves a handler for a media type within the same run.
// Cross-handler coordination goes through this interface and the common
// Handler contract only.
type handlerLookup interface {
	Handler(mediaType library.MediaType) (Handler, error)
}

// runHandlers is the per-run handler set; every handler shares one session.
type runHandlers map[library.MediaType]Handler

func (r runHandlers) Handler(mediaType library.MediaType) (Handler, error) {
	h, ok := r[mediaType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, mediaType)
	}
	return h, nil
}

// Manager builds handler sets for synchronization runs.
type Manager struct {
	store  *library.Store
	logger *slog.Logger
}

// NewManager creates a handler manager.
func NewManager(store *library.Store, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger.With("component", "mediaimport")}
}

// handlersFor creates a fresh handler per supported media type, all bound
// to the given session.
func (m *Manager) handlersFor(sess *session) runHandlers {
	handlers := make(runHandlers, 6)
	for _, mt := range GroupedMediaTypes() {
		handlers[mt] = m.newHandler(mt, sess, handlers)
	}
	return handlers
}

func (m *Manager) newHandler(mediaType library.MediaType, sess *session, lookup handlerLookup) Handler {
	base := &baseHandler{
		sess:   sess,
		lookup: lookup,
		logger: m.logger.With("mediatype", mediaType),
	}
	switch mediaType {
	case library.MediaTypeMovie:
		return newMovieHandler(base)
	case library.MediaTypeVideoSet:
		return newMovieSetHandler(base)
	case library.MediaTypeTvShow:
		return newTvShowHandler(base)
	case library.MediaTypeSeason:
		return newSeasonHandler(base)
	case library.MediaTypeEpisode:
		return newEpisodeHandler(base)
	case library.MediaTypeMusicVideo:
		return newMusicVideoHandler(base)
	default:
		return nil
	}
}

// CheckRequiredTypes verifies that every media type in the import group has
// its required companion types in the same group.
func (m *Manager) CheckRequiredTypes(imp *registry.Import) error {
	sess := newSession(m.store, m.logger)
	handlers := m.handlersFor(sess)
	for _, mt := range imp.MediaTypes {
		h, err := handlers.Handler(mt)
		if err != nil {
			return err
		}
		for _, req := range h.RequiredMediaTypes() {
			if !imp.ContainsMediaType(req) {
				return fmt.Errorf("%w: %s requires %s", ErrMissingRequiredType, mt, req)
			}
		}
	}
	return nil
}
