package event

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/logger"
)

const (
	CodeHandlerPanicked = "EVENT_HANDLER_PANICKED"

	stackTraceSize = 4096
)

// Publisher delivers events to their handlers.
type Publisher interface {
	// Publish delivers e to every interested handler.
	Publish(ctx context.Context, e Event) error
	// PublishAll publishes events one after another in order.
	PublishAll(ctx context.Context, events []Event) error
}

// Bus is the in-process Publisher. Registration and publishing may happen
// concurrently.
type Bus struct {
	logger logger.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates a Bus without handlers.
func NewBus(log logger.Logger) *Bus {
	return &Bus{
		logger:   log.Named("event.bus"),
		handlers: make(map[string][]Handler),
	}
}

// Register appends h to the handlers of eventType. The same handler may be
// registered more than once and is then invoked once per registration.
func (b *Bus) Register(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// HandlerCount returns how many handlers are registered for eventType.
func (b *Bus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Publish runs every handler of e concurrently and waits for all of them.
// Handler errors and panics are logged, never returned. An event without
// handlers is logged as a warning. Publish only fails when ctx is already done,
// in which case no handler is started.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	handlers := slices.Clone(b.handlers[e.EventType()])
	b.mu.RUnlock()

	log := b.logger.WithContext(ctx).With(
		"event_type", e.EventType(),
		"event_id", e.EventID(),
		"aggregate_id", e.AggregateID(),
	)

	if len(handlers) == 0 {
		log.Warn("no handlers registered for event")
		return nil
	}

	var wg sync.WaitGroup
	for _, h := range handlers {
		if !h.CanHandle(e) {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			b.safeHandle(ctx, log, h, e)
		}()
	}
	wg.Wait()

	return nil
}

// PublishAll publishes events sequentially: every handler of an event settles
// before the next event is published. It stops with ctx.Err() when ctx is done
// between events.
func (b *Bus) PublishAll(ctx context.Context, events []Event) error {
	for _, e := range events {
		if err := b.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) safeHandle(ctx context.Context, log logger.Logger, h Handler, e Event) {
	log = log.With("handler", fmt.Sprintf("%T", h))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			log.Errorx(errx.New("panic recovered in event handler",
				errx.WithCode(CodeHandlerPanicked),
				errx.WithType(errx.T_Internal),
				errx.WithDetails(errx.D{
					"panic_values": fmt.Sprintf("%v", r),
					"stack_trace":  string(stackTrace),
				}),
			))
		}
	}()

	if err := h.Handle(ctx, e); err != nil {
		log.With("duration", time.Since(start).String()).Errorx(err)
		return
	}

	log.With("duration", time.Since(start).String()).Debug("event handled")
}
