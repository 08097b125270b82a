// Package library manages the local media library (items, paths, files,
// import links) over sqlite.
package library

import (
	"time"
)

// MediaType identifies the kind of a library item.
type MediaType string

const (
	MediaTypeMovie      MediaType = "movie"
	MediaTypeVideoSet   MediaType = "videoset"
	MediaTypeTvShow     MediaType = "tvshow"
	MediaTypeSeason     MediaType = "season"
	MediaTypeEpisode    MediaType = "episode"
	MediaTypeMusicVideo MediaType = "musicvideo"
)

// IsContainer reports whether items of this type exist only as parents of
// other items (no media file of their own).
func (m MediaType) IsContainer() bool {
	switch m {
	case MediaTypeVideoSet, MediaTypeTvShow, MediaTypeSeason:
		return true
	}
	return false
}

// Actor is a single cast entry.
type Actor struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Thumb string `json:"thumb,omitempty"`
}

// Item is a library entity of any media type. DbID <= 0 means the item has
// not been persisted yet. Hierarchical links: episodes and seasons carry
// ShowID, movies may carry SetID.
type Item struct {
	DbID      int64
	MediaType MediaType
	FileID    *int64 // nil for container types (set, tvshow, season)

	Title     string
	SortTitle string
	Plot      string
	Year      int
	Premiered string
	MPAA      string
	UniqueID  string

	Cast     []Actor
	Genre    []string
	Studio   []string
	Country  []string
	Director []string
	Writer   []string
	Art      map[string]string

	// Playback state, backed by the file record when one exists.
	PlayCount     int
	LastPlayed    *time.Time
	ResumeSeconds int

	// Location. BasePath is the owning source's root; ParentPathID points
	// at the synthetic path row registered for that source.
	Path         string
	BasePath     string
	ParentPathID *int64

	// Hierarchy.
	ShowID    *int64
	ShowTitle string
	Season    int // -1 when not applicable
	Episode   int // -1 when not applicable
	SetID     *int64
	SetTitle  string

	Enabled   bool
	AddedAt   time.Time
	UpdatedAt time.Time
}

// Label returns a human-readable identifier for log records.
func (i *Item) Label() string {
	switch i.MediaType {
	case MediaTypeEpisode:
		return i.ShowTitle + " " + i.Title
	case MediaTypeSeason:
		return i.ShowTitle + " " + i.Title
	default:
		return i.Title
	}
}

// Path is a synthetic filesystem path row. Sources register their base path
// here; items reference their parent path for cleanup bookkeeping.
type Path struct {
	ID       int64
	Path     string
	ParentID *int64
	AddedAt  time.Time
}

// File is a playable media file backing an item.
type File struct {
	ID            int64
	PathID        int64
	Filename      string
	PlayCount     int
	LastPlayed    *time.Time
	ResumeSeconds int
	AddedAt       time.Time
}
