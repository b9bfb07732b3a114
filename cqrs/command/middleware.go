package command

import "context"

// Next invokes the remainder of the pipeline.
type Next func(ctx context.Context, cmd Command) (any, error)

// Middleware wraps command dispatch. Implementations call next to continue and
// should return the errors they observe unchanged.
type Middleware interface {
	Execute(ctx context.Context, cmd Command, next Next) (any, error)
}

// MiddlewareFunc adapts a function to Middleware.
type MiddlewareFunc func(ctx context.Context, cmd Command, next Next) (any, error)

func (f MiddlewareFunc) Execute(ctx context.Context, cmd Command, next Next) (any, error) {
	return f(ctx, cmd, next)
}

// chain folds middlewares around final so that middlewares[0] is outermost.
func chain(middlewares []Middleware, final Next) Next {
	next := final
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw, inner := middlewares[i], next
		next = func(ctx context.Context, cmd Command) (any, error) {
			return mw.Execute(ctx, cmd, inner)
		}
	}
	return next
}
