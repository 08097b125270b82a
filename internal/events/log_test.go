package events

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			payload TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_events_type ON events(event_type);
		CREATE INDEX idx_events_entity ON events(entity_type, entity_id);
		CREATE INDEX idx_events_occurred ON events(occurred_at);
	`)
	require.NoError(t, err)
	return db
}

func TestEventLog_Append(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	id, err := log.Append(NewScanStarted(1, "plex-main", "run-abc"))
	require.NoError(t, err)
	assert.Positive(t, id)

	// Verify payload is stored correctly
	events, err := log.ForEntity(EntityImport, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Payload, `"run_id":"run-abc"`)
	assert.Equal(t, EventScanStarted, events[0].EventType)
	assert.Equal(t, EntityImport, events[0].EntityType)
	assert.Equal(t, int64(1), events[0].EntityID)
}

func TestEventLog_Since(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	start := time.Now().Add(-time.Hour)

	_, err := log.Append(NewScanStarted(1, "plex-main", "run-1"))
	require.NoError(t, err)
	_, err = log.Append(NewScanFinished(1, "plex-main", "run-1", 2, 0, 0, 0))
	require.NoError(t, err)

	events, err := log.Since(start)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Order by id ascending
	assert.Equal(t, EventScanStarted, events[0].EventType)
	assert.Equal(t, EventScanFinished, events[1].EventType)
}

func TestEventLog_ForEntity(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	// Events for two different imports
	_, err := log.Append(NewScanStarted(1, "plex-main", "run-1"))
	require.NoError(t, err)
	_, err = log.Append(NewScanStarted(2, "nas", "run-2"))
	require.NoError(t, err)
	_, err = log.Append(NewScanFinished(1, "plex-main", "run-1", 0, 0, 0, 0))
	require.NoError(t, err)

	events, err := log.ForEntity(EntityImport, 1)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventScanStarted, events[0].EventType)
	assert.Equal(t, EventScanFinished, events[1].EventType)

	events2, err := log.ForEntity(EntityImport, 2)
	require.NoError(t, err)
	require.Len(t, events2, 1)
	assert.Equal(t, "run-2", mustRunID(t, events2[0]))
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	// Insert an event with a manually backdated occurred_at
	_, err := db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		EventScanFinished, EntityImport, 1, `{"run_id":"old"}`, time.Now().Add(-100*24*time.Hour),
	)
	require.NoError(t, err)

	_, err = log.Append(NewScanFinished(2, "plex-main", "run-new", 0, 0, 0, 0))
	require.NoError(t, err)

	count, err := log.Prune(90 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Only the recent event survives
	events, err := log.Since(time.Time{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].EntityID)
}

func TestEventLog_Recent(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)

	for i := 0; i < 5; i++ {
		evt := NewItemChange(TypeItemAdded, int64(i+1), "movie", fmt.Sprintf("Movie %d", i+1))
		_, err := log.Append(evt)
		require.NoError(t, err)
	}

	events, err := log.Recent(3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Reverse chronological order (newest first)
	assert.Equal(t, int64(5), events[0].EntityID)
	assert.Equal(t, int64(4), events[1].EntityID)
	assert.Equal(t, int64(3), events[2].EntityID)
}

func mustRunID(t *testing.T, rec RawEvent) string {
	t.Helper()
	var payload struct {
		RunID string `json:"run_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(rec.Payload), &payload))
	return payload.RunID
}
