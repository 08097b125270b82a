// internal/events/scan.go
package events

// Entity types for synchronization events.
const (
	EntityImport = "import"
	EntitySource = "source"
)

// Synchronization event types.
const (
	EventScanStarted  = "scan.started"
	EventScanFinished = "scan.finished"

	TypeItemAdded   = "item.added"
	TypeItemChanged = "item.changed"
	TypeItemRemoved = "item.removed"
)

// ScanStarted is published when a synchronization run begins.
type ScanStarted struct {
	BaseEvent
	Source string `json:"source"`
	RunID  string `json:"run_id"`
}

// NewScanStarted creates a ScanStarted event.
func NewScanStarted(importID int64, source, runID string) *ScanStarted {
	return &ScanStarted{
		BaseEvent: NewBaseEvent(EventScanStarted, EntityImport, importID),
		Source:    source,
		RunID:     runID,
	}
}

// ScanFinished is published after a synchronization run commits.
type ScanFinished struct {
	BaseEvent
	Source  string `json:"source"`
	RunID   string `json:"run_id"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Removed int    `json:"removed"`
	Failed  int    `json:"failed"`
}

// NewScanFinished creates a ScanFinished event.
func NewScanFinished(importID int64, source, runID string, added, updated, removed, failed int) *ScanFinished {
	return &ScanFinished{
		BaseEvent: NewBaseEvent(EventScanFinished, EntityImport, importID),
		Source:    source,
		RunID:     runID,
		Added:     added,
		Updated:   updated,
		Removed:   removed,
		Failed:    failed,
	}
}

// ItemChange is published for each item a synchronization run adds,
// updates, or removes.
type ItemChange struct {
	BaseEvent
	MediaType string `json:"media_type"`
	Label     string `json:"label"`
}

// NewItemChange creates an ItemChange event. eventType is one of
// TypeItemAdded, TypeItemChanged, or TypeItemRemoved.
func NewItemChange(eventType string, importID int64, mediaType, label string) *ItemChange {
	return &ItemChange{
		BaseEvent: NewBaseEvent(eventType, EntityImport, importID),
		MediaType: mediaType,
		Label:     label,
	}
}
