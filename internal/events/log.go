package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent is a persisted event with its payload still encoded. Use a
// Registry to decode it back into a concrete type.
type RawEvent struct {
	ID         int64
	EventType  string
	EntityType string
	EntityID   int64
	Payload    string
	OccurredAt time.Time
	CreatedAt  time.Time
}

const eventColumns = "id, event_type, entity_type, entity_id, payload, occurred_at, created_at"

// EventLog is the append-only event history backed by SQLite.
type EventLog struct {
	db *sql.DB
}

// NewEventLog creates a new event log.
func NewEventLog(db *sql.DB) *EventLog {
	return &EventLog{db: db}
}

// Append persists an event and returns its ID.
func (l *EventLog) Append(e Event) (int64, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	result, err := l.db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.EventType(), e.EntityType(), e.EntityID(), string(payload), e.OccurredAt(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return result.LastInsertId()
}

// Since returns every event that occurred at or after t, oldest first.
func (l *EventLog) Since(t time.Time) ([]RawEvent, error) {
	return l.query("WHERE occurred_at >= ? ORDER BY id ASC", t)
}

// ForEntity returns the full history of one entity, oldest first.
func (l *EventLog) ForEntity(entityType string, entityID int64) ([]RawEvent, error) {
	return l.query("WHERE entity_type = ? AND entity_id = ? ORDER BY id ASC", entityType, entityID)
}

// Recent returns the most recent events, newest first.
func (l *EventLog) Recent(limit int) ([]RawEvent, error) {
	return l.query("ORDER BY id DESC LIMIT ?", limit)
}

// Prune deletes events older than the given retention and reports how
// many were removed.
func (l *EventLog) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	result, err := l.db.Exec(`DELETE FROM events WHERE occurred_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return result.RowsAffected()
}

func (l *EventLog) query(clause string, args ...any) ([]RawEvent, error) {
	rows, err := l.db.Query("SELECT "+eventColumns+" FROM events "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []RawEvent
	for rows.Next() {
		var e RawEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID, &e.Payload, &e.OccurredAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
