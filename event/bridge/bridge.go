// Package bridge forwards domain events from the in-process bus to a watermill
// publisher so that other processes can observe them.
package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/event"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/meta"
)

// Metadata keys set on every forwarded message.
const (
	MetadataEventType    = "event_type"
	MetadataAggregateID  = "aggregate_id"
	MetadataOccurredAt   = "occurred_at"
	MetadataPartitionKey = "partition_key"
	MetadataTraceID      = "trace_id"
)

// Forwarder is an event.Handler publishing every event it receives as a JSON
// encoded watermill message on one topic. The message uuid is the event id and
// the aggregate id is used as partition key.
type Forwarder struct {
	publisher message.Publisher
	topic     string
	logger    logger.Logger
}

var _ event.Handler = (*Forwarder)(nil)

// NewForwarder creates a Forwarder publishing on topic.
func NewForwarder(publisher message.Publisher, topic string, log logger.Logger) *Forwarder {
	return &Forwarder{
		publisher: publisher,
		topic:     topic,
		logger:    log.Named("event.bridge").With("topic", topic),
	}
}

// Attach registers f on bus for each of eventTypes.
func (f *Forwarder) Attach(bus *event.Bus, eventTypes ...string) {
	for _, t := range eventTypes {
		bus.Register(t, f)
	}
}

func (f *Forwarder) CanHandle(event.Event) bool {
	return true
}

func (f *Forwarder) Handle(ctx context.Context, e event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"event_type": e.EventType()}))
	}

	msg := message.NewMessage(e.EventID(), payload)
	msg.Metadata.Set(MetadataEventType, e.EventType())
	msg.Metadata.Set(MetadataAggregateID, e.AggregateID())
	msg.Metadata.Set(MetadataPartitionKey, e.AggregateID())
	msg.Metadata.Set(MetadataOccurredAt, e.OccurredAt().Format(time.RFC3339Nano))
	if traceID, err := meta.ShouldGetMeta(ctx, meta.TraceID); err == nil {
		msg.Metadata.Set(MetadataTraceID, traceID)
	}
	msg.SetContext(ctx)

	if err := f.publisher.Publish(f.topic, msg); err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{
			"topic":      f.topic,
			"event_type": e.EventType(),
			"event_id":   e.EventID(),
		}))
	}

	f.logger.WithContext(ctx).
		With("event_type", e.EventType(), "event_id", e.EventID()).
		Debug("event forwarded")
	return nil
}
