package command

import (
	"context"
)

// Handler processes commands of one tag.
type Handler interface {
	// CommandType is the tag the handler is routed under. An empty tag makes the
	// handler a fallback consulted for every command, but only after every
	// handler of the command's own tag declined it, whatever the registration order.
	CommandType() string
	// CanHandle reports whether the handler claims cmd.
	CanHandle(cmd Command) bool
	// Handle executes cmd.
	Handle(ctx context.Context, cmd Command) (any, error)
}

// HandlerOption configures handlers built by NewHandler.
type HandlerOption[C Command] func(*typedHandler[C])

// WithPredicate narrows the commands a typed handler claims.
func WithPredicate[C Command](fn func(C) bool) HandlerOption[C] {
	return func(h *typedHandler[C]) {
		h.predicate = fn
	}
}

// NewHandler adapts a typed function into a Handler. The tag is taken from the
// zero value of C, so CommandType must not depend on payload fields.
func NewHandler[C Command, R any](fn func(ctx context.Context, cmd C) (R, error), opts ...HandlerOption[C]) Handler {
	var zero C
	h := &typedHandler[C]{
		tag: zero.CommandType(),
		fn: func(ctx context.Context, cmd C) (any, error) {
			return fn(ctx, cmd)
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type typedHandler[C Command] struct {
	tag       string
	fn        func(context.Context, C) (any, error)
	predicate func(C) bool
}

func (h *typedHandler[C]) CommandType() string {
	return h.tag
}

func (h *typedHandler[C]) CanHandle(cmd Command) bool {
	typed, ok := cmd.(C)
	if !ok {
		return false
	}
	return h.predicate == nil || h.predicate(typed)
}

func (h *typedHandler[C]) Handle(ctx context.Context, cmd Command) (any, error) {
	typed, ok := cmd.(C)
	if !ok {
		return nil, noHandlerFound(cmd)
	}
	return h.fn(ctx, typed)
}
