// Package mediaimport reconciles externally-sourced media metadata against
// the local library. It provides per-media-type import handlers, the
// changeset comparator, hierarchical parent resolution (episode/season to
// tvshow, movie to set), and the synchronization orchestrator that wraps a
// run in a single transaction.
package mediaimport

import (
	"errors"

	"github.com/vmunix/mediasync/internal/library"
)

var (
	// ErrSyncInFlight indicates a synchronization run is already active
	// for the import.
	ErrSyncInFlight = errors.New("synchronization already in progress")

	// ErrMissingRequiredType indicates the import group lacks a media
	// type another type in the group depends on.
	ErrMissingRequiredType = errors.New("missing required media type")

	// ErrNoHandler indicates no handler is registered for a media type.
	ErrNoHandler = errors.New("no handler for media type")

	// ErrParentCreation indicates a required parent entity could not be
	// persisted. Unlike other per-item failures this aborts the run,
	// since later children may depend on the same parent.
	ErrParentCreation = errors.New("parent creation failed")
)

// ChangesetType classifies an incoming item relative to local state.
type ChangesetType string

const (
	// ChangesetNone means the item matched a local item with no
	// meaningful difference.
	ChangesetNone ChangesetType = ""

	ChangesetAdded   ChangesetType = "added"
	ChangesetChanged ChangesetType = "changed"
	ChangesetRemoved ChangesetType = "removed"
)

// ChangesetItem pairs an item with its classification. For Changed entries
// Local is the matched library item; for Removed entries Item is the local
// item to delete.
type ChangesetItem struct {
	Type  ChangesetType
	Item  *library.Item
	Local *library.Item
}

// GroupedMediaTypes returns the supported media types in dependency order:
// parents before the children that resolve against them.
func GroupedMediaTypes() []library.MediaType {
	return []library.MediaType{
		library.MediaTypeVideoSet,
		library.MediaTypeMovie,
		library.MediaTypeTvShow,
		library.MediaTypeSeason,
		library.MediaTypeEpisode,
		library.MediaTypeMusicVideo,
	}
}
