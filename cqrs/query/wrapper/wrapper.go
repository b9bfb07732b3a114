// Package wrapper provides middlewares for the query bus.
package wrapper

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/mask"
)

// NewLogging logs every query with its input and duration at debug level.
// Failures are logged at error level.
func NewLogging(log logger.Logger) query.Middleware {
	log = log.Named("cqrs.query.logger")

	return query.MiddlewareFunc(func(ctx context.Context, q query.Query, next query.Next) (any, error) {
		start := time.Now()
		res, err := next(ctx, q)

		l := log.WithContext(ctx).With(
			"query_type", q.QueryType(),
			"query_id", q.QueryID(),
			"input", mask.Fields(q),
			"execution_time", time.Since(start).String(),
		)
		if err != nil {
			l.Errorx(err)
			return res, err
		}

		l.Debug("query executed")
		return res, nil
	})
}

// NewTracing starts a span named after the query type.
func NewTracing() query.Middleware {
	return query.MiddlewareFunc(func(ctx context.Context, q query.Query, next query.Next) (any, error) {
		ctx, span := otel.Tracer("cqrs/query").Start(ctx, q.QueryType())
		defer span.End()
		span.SetAttributes(attribute.String("cqrs.query.id", q.QueryID()))

		res, err := next(ctx, q)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return res, err
	})
}
