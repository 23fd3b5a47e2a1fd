// Package events provides the in-process event bus that connects the
// negotiation service to the SSE stream, plus the random revenue-event
// generator. Events are fire-and-forget notifications; nothing in the pure
// engine depends on them.
package events

import (
	"sync"
	"time"
)

// EventType identifies a category of event on the bus.
type EventType string

const (
	// AllocationComputed fires after every allocation/evaluation round.
	AllocationComputed EventType = "allocation_computed"
	// LevelCompleted fires the first time a scenario's conditions are all met.
	LevelCompleted EventType = "level_completed"
	// SettingsChanged fires when saved controls are updated.
	SettingsChanged EventType = "settings_changed"
	// RevenueEventDrawn fires when a random revenue event is generated.
	RevenueEventDrawn EventType = "revenue_event_drawn"
	// ProgressReset fires when the player's progress is cleared.
	ProgressReset EventType = "progress_reset"
)

// Event is one notification on the bus.
type Event struct {
	Type      EventType   `json:"type"`
	Module    string      `json:"module"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Handler receives published events. Handlers must not block: publishing
// runs them synchronously on the publisher's goroutine.
type Handler func(*Event)

// Bus is a minimal synchronous publish/subscribe hub.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[EventType][]Handler)}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish delivers an event to all handlers subscribed to its type.
// The timestamp is stamped here so publishers don't have to.
func (b *Bus) Publish(module string, data EventData) {
	event := &Event{
		Type:      data.EventType(),
		Module:    module,
		Timestamp: time.Now(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type]))
	copy(handlers, b.handlers[event.Type])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// KnownTypes lists every event type the stream handler may subscribe to.
func KnownTypes() []EventType {
	return []EventType{
		AllocationComputed,
		LevelCompleted,
		SettingsChanged,
		RevenueEventDrawn,
		ProgressReset,
	}
}
