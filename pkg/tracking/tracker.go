package tracking

import (
	"slices"
	"sync"
)

// Tracker receives decision events. Implementations must tolerate being
// called concurrently; the client treats every call as fire-and-forget.
type Tracker interface {
	Track(event Event)
}

// TrackerFunc adapts a plain function to the Tracker interface.
type TrackerFunc func(event Event)

// Track calls the function.
func (f TrackerFunc) Track(event Event) { f(event) }

// MemoryTracker records events in memory. It's useful for testing and simple
// applications.
type MemoryTracker struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryTracker creates an empty in-memory tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{}
}

// Track appends the event.
func (m *MemoryTracker) Track(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of all recorded events in arrival order.
func (m *MemoryTracker) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.events)
}

// Reset discards all recorded events.
func (m *MemoryTracker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
