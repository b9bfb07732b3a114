// Package meta provides functionality for carrying request metadata through context.
//
// Dispatchers and middlewares inject metadata (trace id, the message being processed,
// service identity) and the logger extracts it to enrich every log entry.
package meta

import (
	"context"

	"github.com/code19m/errx"
)

// ContextKey is a type for keys used in context values for metadata.
type ContextKey string

const (
	// TraceID represents a unique identifier for tracing requests across components.
	TraceID ContextKey = "trace_id"

	// CorrelationID groups every message caused by the same originating request.
	CorrelationID ContextKey = "correlation_id"

	// MessageID identifies the command, query or event currently being processed.
	MessageID ContextKey = "message_id"

	// MessageType is the discriminant tag of the message currently being processed.
	MessageType ContextKey = "message_type"

	// ActorID identifies who initiated the request.
	ActorID ContextKey = "actor_id"

	// ActorType indicates the kind of actor that initiated the request.
	ActorType ContextKey = "actor_type"

	// ServiceName identifies the name of current running service.
	ServiceName ContextKey = "service_name"

	// ServiceVersion indicates the version of the service.
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed list of keys extracted by ExtractMetaFromContext
var knownKeys = []ContextKey{
	TraceID,
	CorrelationID,
	MessageID,
	MessageType,
	ActorID,
	ActorType,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext adds metadata from the provided map to the context.
// It only adds values that are not empty strings and returns a new context
// with the added values.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // allow due to finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext extracts all known metadata from the provided context.
// Only non-empty string values are included in the returned map.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range knownKeys {
		if v, ok := ctx.Value(k).(string); ok && v != "" {
			data[k] = v
		}
	}
	return data
}

// ShouldGetMeta returns the string stored under key, or an error when the key is
// absent or holds a value of another type.
func ShouldGetMeta(ctx context.Context, key ContextKey) (string, error) {
	raw := ctx.Value(key)
	if raw == nil {
		return "", errx.New("[meta]: key not found", errx.WithDetails(errx.D{"key": string(key)}))
	}

	v, ok := raw.(string)
	if !ok {
		return "", errx.New("[meta]: type mismatch", errx.WithDetails(errx.D{"key": string(key)}))
	}
	return v, nil
}
