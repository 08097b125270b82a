package events

import "time"

// Event is anything the bus can carry and the log can persist.
type Event interface {
	EventType() string
	EntityType() string
	EntityID() int64
	OccurredAt() time.Time
}

// BaseEvent holds the envelope fields shared by every event type. The
// JSON tags are part of the persisted payload format, so decoded events
// round-trip through the log unchanged.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        int64     `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps a fresh envelope with the current time.
func NewBaseEvent(eventType, entityType string, entityID int64) BaseEvent {
	return BaseEvent{Type: eventType, Entity: entityType, ID: entityID, Timestamp: time.Now()}
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() int64       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
