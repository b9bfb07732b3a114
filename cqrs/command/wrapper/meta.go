package wrapper

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/meta"
)

// NewMetaInject stores the trace id, the command identity and the service
// identity in the context so downstream loggers pick them up.
func NewMetaInject(serviceName, serviceVersion string) command.Middleware {
	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		metadata := map[meta.ContextKey]string{ //nolint:exhaustive // actor keys are set by transports
			meta.TraceID:        getTraceID(ctx),
			meta.MessageID:      cmd.CommandID(),
			meta.MessageType:    cmd.CommandType(),
			meta.ServiceName:    serviceName,
			meta.ServiceVersion: serviceVersion,
		}
		if _, err := meta.ShouldGetMeta(ctx, meta.CorrelationID); err != nil {
			metadata[meta.CorrelationID] = cmd.CommandID()
		}

		return next(meta.InjectMetaToContext(ctx, metadata), cmd)
	})
}

// getTraceID prefers the trace id of the current span, then one already stored in
// ctx, and generates a new one otherwise.
func getTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	if existing, err := meta.ShouldGetMeta(ctx, meta.TraceID); err == nil && existing != "" {
		return existing
	}

	return "man-" + uuid.NewString()
}
