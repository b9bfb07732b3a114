package wrapper

import (
	"context"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
)

// NewMetrics records per command type an execution timer and a failure counter
// in registry, named "cqrs.command.<type>.duration" and "cqrs.command.<type>.failures".
// A nil registry selects metrics.DefaultRegistry.
func NewMetrics(registry metrics.Registry) command.Middleware {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}

	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		prefix := "cqrs.command." + cmd.CommandType()

		start := time.Now()
		res, err := next(ctx, cmd)
		metrics.GetOrRegisterTimer(prefix+".duration", registry).UpdateSince(start)

		if err != nil {
			metrics.GetOrRegisterCounter(prefix+".failures", registry).Inc(1)
		}

		return res, err
	})
}
