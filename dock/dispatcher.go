// Copyright © 2025 Docktile contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/dispatcher.go
// Summary: Per-tree event dispatcher used for all outward notifications.
// Usage: Each Tree owns one dispatcher; nothing is shared process-wide, so
// unrelated layout instances cannot leak events into each other.

package dock

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	// Structural events
	EventLayoutChanged EventType = iota
	EventNodeRemoved
	EventPanelClosed
	EventActivePanelChanged
	// Drag lifecycle
	EventDragStarted
	EventDragEnded
	// Persistence
	EventPersistenceWarning
)

// Event represents a message passed through the system. It has a type and
// can carry an arbitrary data payload.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Listener is an interface that any component can implement to receive
// events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// EventDispatcher manages a list of listeners and broadcasts events to them.
// The lock only matters for hosts that deliver frame ticks from a separate
// goroutine; the core itself mutates single-threaded.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		listeners: make([]Listener, 0),
	}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listeners {
		l.OnEvent(event)
	}
}
