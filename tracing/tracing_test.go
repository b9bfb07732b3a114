package tracing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/rise-and-shine/cqrskit/tracing"
)

func restoreProvider(t *testing.T) {
	t.Helper()
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
}

func TestInitGlobalTracerDisabled(t *testing.T) {
	restoreProvider(t)

	shutdown, err := tracing.InitGlobalTracer(t.Context(), tracing.Config{Disable: true}, "users", "v1")

	require.NoError(t, err)
	assert.IsType(t, noop.TracerProvider{}, otel.GetTracerProvider())
	require.NoError(t, shutdown(t.Context()))
}

func TestInitGlobalTracer(t *testing.T) {
	restoreProvider(t)

	// the gRPC client connects lazily, so no collector is needed
	shutdown, err := tracing.InitGlobalTracer(t.Context(), tracing.Config{
		SampleRate:   1,
		ExporterHost: "127.0.0.1",
		ExporterPort: 4317,
		Tags:         map[string]string{"env": "test"},
	}, "users", "v1")

	require.NoError(t, err)
	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	require.NoError(t, shutdown(t.Context()))
}
