// internal/api/v1/types.go
package v1

import (
	"time"

	"github.com/vmunix/mediasync/internal/library"
	"github.com/vmunix/mediasync/internal/mediaimport"
	"github.com/vmunix/mediasync/internal/registry"
)

// sourceResponse is the API representation of a source.
type sourceResponse struct {
	Identifier    string     `json:"identifier"`
	FriendlyName  string     `json:"friendly_name"`
	BasePath      string     `json:"base_path"`
	IconURL       string     `json:"icon_url,omitempty"`
	ImporterID    string     `json:"importer_id,omitempty"`
	ManuallyAdded bool       `json:"manually_added"`
	Active        bool       `json:"active"`
	Ready         bool       `json:"ready"`
	LastSynced    *time.Time `json:"last_synced,omitempty"`
	AddedAt       time.Time  `json:"added_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func sourceToResponse(src *registry.Source) sourceResponse {
	return sourceResponse{
		Identifier:    src.Identifier,
		FriendlyName:  src.FriendlyName,
		BasePath:      src.BasePath,
		IconURL:       src.IconURL,
		ImporterID:    src.ImporterID,
		ManuallyAdded: src.ManuallyAdded,
		Active:        src.Active,
		Ready:         src.Ready,
		LastSynced:    src.LastSynced,
		AddedAt:       src.AddedAt,
		UpdatedAt:     src.UpdatedAt,
	}
}

type addSourceRequest struct {
	Identifier   string `json:"identifier"`
	FriendlyName string `json:"friendly_name"`
	BasePath     string `json:"base_path"`
	IconURL      string `json:"icon_url"`
	ImporterID   string `json:"importer_id"`
	Active       *bool  `json:"active"`
	Ready        *bool  `json:"ready"`
}

type updateSourceRequest struct {
	FriendlyName *string `json:"friendly_name"`
	IconURL      *string `json:"icon_url"`
	Active       *bool   `json:"active"`
	Ready        *bool   `json:"ready"`
}

type listSourcesResponse struct {
	Items []sourceResponse `json:"items"`
	Total int              `json:"total"`
}

// importResponse is the API representation of an import.
type importResponse struct {
	ID                       int64      `json:"id"`
	SourceID                 string     `json:"source_id"`
	MediaTypes               []string   `json:"media_types"`
	Trigger                  string     `json:"trigger"`
	UpdateImportedItems      bool       `json:"update_imported_items"`
	UpdatePlaybackFromSource bool       `json:"update_playback_from_source"`
	UpdatePlaybackOnSource   bool       `json:"update_playback_on_source"`
	LastSynced               *time.Time `json:"last_synced,omitempty"`
	AddedAt                  time.Time  `json:"added_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

func importToResponse(imp *registry.Import) importResponse {
	types := make([]string, len(imp.MediaTypes))
	for i, mt := range imp.MediaTypes {
		types[i] = string(mt)
	}
	return importResponse{
		ID:                       imp.ID,
		SourceID:                 imp.SourceID,
		MediaTypes:               types,
		Trigger:                  string(imp.Settings.Trigger),
		UpdateImportedItems:      imp.Settings.UpdateImportedItems,
		UpdatePlaybackFromSource: imp.Settings.UpdatePlaybackFromSource,
		UpdatePlaybackOnSource:   imp.Settings.UpdatePlaybackOnSource,
		LastSynced:               imp.LastSynced,
		AddedAt:                  imp.AddedAt,
		UpdatedAt:                imp.UpdatedAt,
	}
}

type addImportRequest struct {
	SourceID                 string   `json:"source_id"`
	MediaTypes               []string `json:"media_types"`
	Trigger                  *string  `json:"trigger"`
	UpdateImportedItems      *bool    `json:"update_imported_items"`
	UpdatePlaybackFromSource *bool    `json:"update_playback_from_source"`
	UpdatePlaybackOnSource   *bool    `json:"update_playback_on_source"`
}

type updateImportRequest struct {
	Trigger                  *string `json:"trigger"`
	UpdateImportedItems      *bool   `json:"update_imported_items"`
	UpdatePlaybackFromSource *bool   `json:"update_playback_from_source"`
	UpdatePlaybackOnSource   *bool   `json:"update_playback_on_source"`
}

type listImportsResponse struct {
	Items []importResponse `json:"items"`
	Total int              `json:"total"`
}

// itemResponse is the API representation of a library item.
type itemResponse struct {
	ID         int64      `json:"id"`
	MediaType  string     `json:"media_type"`
	Title      string     `json:"title"`
	Year       int        `json:"year,omitempty"`
	ShowTitle  string     `json:"show_title,omitempty"`
	Season     int        `json:"season,omitempty"`
	Episode    int        `json:"episode,omitempty"`
	SetTitle   string     `json:"set_title,omitempty"`
	PlayCount  int        `json:"play_count"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
	Path       string     `json:"path"`
	Enabled    bool       `json:"enabled"`
}

func itemToResponse(it *library.Item) itemResponse {
	resp := itemResponse{
		ID:         it.DbID,
		MediaType:  string(it.MediaType),
		Title:      it.Title,
		Year:       it.Year,
		ShowTitle:  it.ShowTitle,
		SetTitle:   it.SetTitle,
		PlayCount:  it.PlayCount,
		LastPlayed: it.LastPlayed,
		Path:       it.Path,
		Enabled:    it.Enabled,
	}
	if it.Season >= 0 {
		resp.Season = it.Season
	}
	if it.Episode >= 0 {
		resp.Episode = it.Episode
	}
	return resp
}

type listItemsResponse struct {
	Items  []itemResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// runResponse reports one synchronization run.
type runResponse struct {
	RunID     string `json:"run_id"`
	Added     int    `json:"added"`
	Updated   int    `json:"updated"`
	Removed   int    `json:"removed"`
	Unchanged int    `json:"unchanged"`
	Failed    int    `json:"failed"`
}

func runToResponse(res *mediaimport.RunResult) runResponse {
	return runResponse{
		RunID:     res.RunID,
		Added:     res.Added,
		Updated:   res.Updated,
		Removed:   res.Removed,
		Unchanged: res.Unchanged,
		Failed:    res.Failed,
	}
}

type searchResultResponse struct {
	Score float64      `json:"score"`
	Item  itemResponse `json:"item"`
}

type listSearchResponse struct {
	Items []searchResultResponse `json:"items"`
	Total int                    `json:"total"`
}

type eventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	OccurredAt string `json:"occurred_at"`
	Summary    string `json:"summary,omitempty"`
}

type listEventsResponse struct {
	Items []eventResponse `json:"items"`
	Total int             `json:"total"`
}

type statusResponse struct {
	Status       string         `json:"status"`
	Sources      int            `json:"sources"`
	Imports      int            `json:"imports"`
	Items        map[string]int `json:"items"`
	NextAutoSync *time.Time     `json:"next_auto_sync,omitempty"`
}
