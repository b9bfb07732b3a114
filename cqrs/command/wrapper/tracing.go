package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
)

const tracerName = "cqrs/command"

// NewTracing starts a span named after the command type around the rest of the
// pipeline and records failures on it. The global tracer provider is used.
func NewTracing() command.Middleware {
	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		ctx, span := otel.Tracer(tracerName).Start(ctx, cmd.CommandType(),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("cqrs.command.type", cmd.CommandType()),
				attribute.String("cqrs.command.id", cmd.CommandID()),
			),
		)
		defer span.End()

		res, err := next(ctx, cmd)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}

		return res, err
	})
}
