package event

import "context"

// Handler reacts to events.
type Handler interface {
	CanHandle(e Event) bool
	Handle(ctx context.Context, e Event) error
}

// HandlerFunc adapts a function into a Handler claiming every event.
type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) CanHandle(Event) bool { return true }

func (f HandlerFunc) Handle(ctx context.Context, e Event) error { return f(ctx, e) }

// NewHandler adapts a typed function into a Handler claiming events of type E.
func NewHandler[E Event](fn func(ctx context.Context, e E) error) Handler {
	return typedHandler[E](fn)
}

type typedHandler[E Event] func(ctx context.Context, e E) error

func (h typedHandler[E]) CanHandle(e Event) bool {
	_, ok := e.(E)
	return ok
}

func (h typedHandler[E]) Handle(ctx context.Context, e Event) error {
	typed, ok := e.(E)
	if !ok {
		return nil
	}
	return h(ctx, typed)
}
