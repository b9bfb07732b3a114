package query

import "context"

// Handler answers queries of one tag.
type Handler interface {
	// QueryType is the routing tag. Empty-tag handlers are fallbacks tried after
	// the tagged ones regardless of registration order.
	QueryType() string
	CanHandle(q Query) bool
	Handle(ctx context.Context, q Query) (any, error)
}

// NewHandler adapts a typed function into a Handler routed under the tag of Q.
func NewHandler[Q Query, R any](fn func(ctx context.Context, q Q) (R, error)) Handler {
	var zero Q
	return &typedHandler[Q]{
		tag: zero.QueryType(),
		fn: func(ctx context.Context, q Q) (any, error) {
			return fn(ctx, q)
		},
	}
}

type typedHandler[Q Query] struct {
	tag string
	fn  func(context.Context, Q) (any, error)
}

func (h *typedHandler[Q]) QueryType() string {
	return h.tag
}

func (h *typedHandler[Q]) CanHandle(q Query) bool {
	_, ok := q.(Q)
	return ok
}

func (h *typedHandler[Q]) Handle(ctx context.Context, q Query) (any, error) {
	typed, ok := q.(Q)
	if !ok {
		return nil, noHandlerFound(q)
	}
	return h.fn(ctx, typed)
}
