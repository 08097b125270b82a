package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	// Subscribe before publishing
	ch := bus.Subscribe(EventScanFinished, 10)

	err := bus.Publish(context.Background(), NewScanFinished(1, "plex-main", "run-1", 3, 1, 0, 0))
	require.NoError(t, err)

	select {
	case received := <-ch:
		assert.Equal(t, EventScanFinished, received.EventType())
		assert.Equal(t, int64(1), received.EntityID())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_SubscriberOnlySeesItsType(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventScanStarted, 10)

	require.NoError(t, bus.Publish(context.Background(), NewScanFinished(1, "plex-main", "run-1", 0, 0, 0, 0)))
	require.NoError(t, bus.Publish(context.Background(), NewScanStarted(1, "plex-main", "run-2")))

	select {
	case received := <-ch:
		assert.Equal(t, EventScanStarted, received.EventType())
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
	select {
	case e := <-ch:
		t.Fatalf("unexpected second event: %s", e.EventType())
	default:
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(10)

	require.NoError(t, bus.Publish(context.Background(), NewScanStarted(1, "plex-main", "run-1")))
	require.NoError(t, bus.Publish(context.Background(), NewItemChange(TypeItemAdded, 1, "movie", "Heat (1995)")))

	received := make([]Event, 0, 2)
	timeout := time.After(time.Second)
	for i := 0; i < 2; i++ {
		select {
		case e := <-ch:
			received = append(received, e)
		case <-timeout:
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}

	assert.Len(t, received, 2)
}

func TestBus_Unsubscribe(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	ch := bus.Subscribe(EventScanFinished, 10)
	bus.Unsubscribe(ch)

	// Publish must not block with no subscribers left
	err := bus.Publish(context.Background(), NewScanFinished(1, "plex-main", "run-1", 0, 0, 0, 0))
	require.NoError(t, err)

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed")
	default:
		// Also acceptable - channel is closed
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	// No persistence needed - this test verifies concurrent delivery
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.SubscribeAll(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = bus.Publish(context.Background(), NewItemChange(TypeItemAdded, int64(n), "movie", "Movie"))
		}(i)
	}
	wg.Wait()

	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}

	assert.Equal(t, 10, count)
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, nil)
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), NewScanStarted(1, "plex-main", "run-1"))
	assert.NoError(t, err)
}
