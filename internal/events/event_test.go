package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseEvent_Accessors(t *testing.T) {
	now := time.Now()
	e := BaseEvent{Type: "scan.finished", Entity: EntityImport, ID: 7, Timestamp: now}

	assert.Equal(t, "scan.finished", e.EventType())
	assert.Equal(t, EntityImport, e.EntityType())
	assert.Equal(t, int64(7), e.EntityID())
	assert.Equal(t, now, e.OccurredAt())
}

func TestNewBaseEvent_StampsCurrentTime(t *testing.T) {
	before := time.Now()
	e := NewBaseEvent("scan.started", EntityImport, 123)

	assert.Equal(t, "scan.started", e.EventType())
	assert.Equal(t, int64(123), e.EntityID())
	assert.False(t, e.OccurredAt().Before(before))
}
