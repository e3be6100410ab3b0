package events

import (
	"sync"
	"time"
)

// Topic names published by the pipeline
const (
	TopicPatientAdmitted   = "patient.admitted"
	TopicVitalsRecorded    = "patient.vitals_recorded"
	TopicRiskAssessed      = "risk.assessed"
	TopicRiskEscalation    = "risk.escalation"
	TopicDecisionMade      = "decision.made"
	TopicCapacityAssessed  = "capacity.assessed"
	TopicPatientDischarged = "patient.discharged"

	// TopicWildcard subscribes to every topic
	TopicWildcard = "*"
)

const maxBusHistory = 1000

// Event is one published record.
type Event struct {
	Topic     string      `json:"topic"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Bus is a topic-based in-process event bus with a bounded history.
// Safe for concurrent use.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
	history     []Event

	now func() time.Time
}

// NewBus builds a Bus on the wall clock.
func NewBus() *Bus {
	return NewBusWithClock(time.Now)
}

// NewBusWithClock builds a Bus with a caller-supplied clock.
func NewBusWithClock(now func() time.Time) *Bus {
	return &Bus{
		subscribers: make(map[string][]Handler),
		now:         now,
	}
}

// Subscribe registers a handler for a topic. Use TopicWildcard to receive
// every event.
func (b *Bus) Subscribe(topic string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[topic] = append(b.subscribers[topic], handler)
}

// Publish records the event and delivers it to topic and wildcard
// subscribers.
func (b *Bus) Publish(topic string, payload interface{}) {
	event := Event{Topic: topic, Payload: payload, Timestamp: b.now()}

	b.mu.Lock()
	b.history = append(b.history, event)
	if len(b.history) > maxBusHistory {
		b.history = b.history[len(b.history)-maxBusHistory:]
	}
	handlers := make([]Handler, 0, len(b.subscribers[topic])+len(b.subscribers[TopicWildcard]))
	handlers = append(handlers, b.subscribers[topic]...)
	handlers = append(handlers, b.subscribers[TopicWildcard]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// History returns the most recent events, newest last, optionally filtered
// by topic. An empty topic returns all events.
func (b *Bus) History(topic string, limit int) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var filtered []Event
	if topic == "" {
		filtered = b.history
	} else {
		for _, e := range b.history {
			if e.Topic == topic {
				filtered = append(filtered, e)
			}
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}

	out := make([]Event, len(filtered))
	copy(out, filtered)
	return out
}

// ClearHistory drops the recorded history but keeps subscriptions.
func (b *Bus) ClearHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}
