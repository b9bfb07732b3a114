package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
)

// NewTimeout bounds the context handed to the rest of the pipeline.
// A non-positive timeout leaves the context untouched.
func NewTimeout(timeout time.Duration) command.Middleware {
	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		if timeout <= 0 {
			return next(ctx, cmd)
		}

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return next(ctx, cmd)
	})
}
