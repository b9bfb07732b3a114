package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/meta"
)

const (
	// HeaderCorrelationID lets callers group requests belonging to one flow.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderActorID identifies the caller until real authentication exists.
	HeaderActorID = "X-Actor-ID"
	// HeaderActorType names the kind of caller, e.g. "admin".
	HeaderActorType = "X-Actor-Type"
)

// NewMetaInjectMW injects request metadata into the user context so that
// loggers and command middlewares downstream can pick it up.
func NewMetaInjectMW(serviceName, serviceVersion string) httpserver.Middleware {
	return httpserver.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := meta.InjectMetaToContext(c.UserContext(), map[meta.ContextKey]string{
				meta.TraceID:        getTraceID(c.UserContext()),
				meta.CorrelationID:  c.Get(HeaderCorrelationID),
				meta.ActorID:        c.Get(HeaderActorID),
				meta.ActorType:      c.Get(HeaderActorType),
				meta.ServiceName:    serviceName,
				meta.ServiceVersion: serviceVersion,
			})
			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}

// getTraceID returns the trace id of the current span, or a fresh uuid when
// no sampled span is present.
func getTraceID(ctx context.Context) string {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if spanCtx.HasTraceID() {
		return spanCtx.TraceID().String()
	}
	return uuid.NewString()
}
