package events

import (
	"context"
	"log/slog"
	"sync"
)

// subscription is one listener. An empty eventType matches every event.
type subscription struct {
	eventType string
	ch        chan Event
}

// Bus fans synchronization lifecycle events out to subscribers and
// appends them to the persistent log. Delivery is non-blocking: a
// subscriber that falls behind loses events rather than stalling a
// synchronization run.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	log    *EventLog // nil disables persistence
	logger *slog.Logger
	closed bool
}

// NewBus creates an event bus. Pass a nil EventLog to disable
// persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{log: log, logger: logger}
}

// Publish persists the event and delivers it to matching subscribers.
// A persistence failure is logged but does not block delivery.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	targets := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.eventType == "" || sub.eventType == e.EventType() {
			targets = append(targets, sub)
		}
	}
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			b.logger.Error("failed to persist event", "type", e.EventType(), "error", err)
		}
	}

	for _, sub := range targets {
		select {
		case sub.ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(),
				"entity_type", e.EntityType(),
				"entity_id", e.EntityID())
		}
	}
	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	return b.subscribe(eventType, bufferSize)
}

// SubscribeAll returns a channel receiving every published event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	return b.subscribe("", bufferSize)
}

func (b *Bus) subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &subscription{eventType: eventType, ch: make(chan Event, bufferSize)}
	b.subs = append(b.subs, sub)
	return sub.ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.ch == ch {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close shuts down the bus and closes all subscriber channels. Publish
// becomes a no-op afterwards.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, sub := range b.subs {
		close(sub.ch)
	}
	b.subs = nil
	return nil
}
