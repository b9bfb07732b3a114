package query

import "context"

// Next invokes the remainder of the pipeline.
type Next func(ctx context.Context, q Query) (any, error)

// Middleware wraps query dispatch.
type Middleware interface {
	Execute(ctx context.Context, q Query, next Next) (any, error)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, q Query, next Next) (any, error)

func (f MiddlewareFunc) Execute(ctx context.Context, q Query, next Next) (any, error) {
	return f(ctx, q, next)
}

// chain folds middlewares around final, middlewares[0] outermost.
func chain(middlewares []Middleware, final Next) Next {
	next := final
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw, inner := middlewares[i], next
		next = func(ctx context.Context, q Query) (any, error) {
			return mw.Execute(ctx, q, inner)
		}
	}
	return next
}
