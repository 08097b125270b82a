// internal/events/registry.go
package events

import (
	"encoding/json"
	"fmt"
)

// Registry turns persisted payloads back into concrete event values.
// Each event type registers a factory producing a zero value to
// unmarshal into.
type Registry struct {
	factories map[string]func() Event
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() Event)}
}

// Register associates an event type with its factory. Later
// registrations for the same type win.
func (r *Registry) Register(eventType string, factory func() Event) {
	r.factories[eventType] = factory
}

// Unmarshal decodes a raw log record into its concrete event type.
func (r *Registry) Unmarshal(raw RawEvent) (Event, error) {
	factory, ok := r.factories[raw.EventType]
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", raw.EventType)
	}
	e := factory()
	if err := json.Unmarshal([]byte(raw.Payload), e); err != nil {
		return nil, fmt.Errorf("unmarshal event payload: %w", err)
	}
	return e, nil
}

// DefaultRegistry returns a registry covering every event this package
// emits. The three item change types share one concrete struct.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(EventScanStarted, func() Event { return &ScanStarted{} })
	r.Register(EventScanFinished, func() Event { return &ScanFinished{} })
	for _, t := range []string{TypeItemAdded, TypeItemChanged, TypeItemRemoved} {
		r.Register(t, func() Event { return &ItemChange{} })
	}
	return r
}
