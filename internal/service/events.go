package service

import (
	"log/slog"
	"sort"
)

// EventType defines the type of event
type EventType string

const (
	EventStationCreated  EventType = "station_created"
	EventStationUpdated  EventType = "station_updated"
	EventPipelineCreated EventType = "pipeline_created"
	EventPipelineUpdated EventType = "pipeline_updated"
	EventStationsLinked  EventType = "stations_linked"
	EventNetworkSaved    EventType = "network_saved"
	EventNetworkLoaded   EventType = "network_loaded"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType      `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Handler receives published events
type Handler func(Event)

// EventBus dispatches events to subscribers synchronously, in subscription order.
type EventBus struct {
	subscribers []Handler
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]Handler, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(h Handler) {
	eb.subscribers = append(eb.subscribers, h)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	for _, h := range eb.subscribers {
		h(event)
	}
}

// LogEvents returns a handler that writes each event to logger at info level.
func LogEvents(logger *slog.Logger) Handler {
	return func(e Event) {
		keys := make([]string, 0, len(e.Payload))
		for k := range e.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		args := make([]any, 0, 2*len(keys))
		for _, k := range keys {
			args = append(args, k, e.Payload[k])
		}
		logger.Info(string(e.Type), args...)
	}
}
