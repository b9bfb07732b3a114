// Package event defines domain events and the in-process publisher that fans
// them out to interested handlers.
//
// Handlers of one event run concurrently and independently: a failing or
// panicking handler is logged and never affects the others or the publisher.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of something that happened to an aggregate.
type Event interface {
	EventID() string
	// EventType is the tag handlers are registered under.
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// Meta carries the identity of an event. Embed it in concrete events.
type Meta struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	Timestamp time.Time `json:"occurred_at"`
}

// NewMeta returns Meta for a new occurrence of eventType on aggregateID.
func NewMeta(eventType, aggregateID string) Meta {
	return Meta{
		ID:        uuid.NewString(),
		Type:      eventType,
		Aggregate: aggregateID,
		Timestamp: time.Now().UTC(),
	}
}

func (m Meta) EventID() string       { return m.ID }
func (m Meta) EventType() string     { return m.Type }
func (m Meta) AggregateID() string   { return m.Aggregate }
func (m Meta) OccurredAt() time.Time { return m.Timestamp }
