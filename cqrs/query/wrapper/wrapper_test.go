package wrapper_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/cqrs/query/wrapper"
	"github.com/rise-and-shine/cqrskit/logger"
)

type search struct {
	query.Meta
	Term  string `json:"term"`
	Token string `json:"token" mask:"true"`
}

func (search) QueryType() string { return "test.search" }

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := query.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(query.NewHandler(func(_ context.Context, q search) ([]string, error) {
		if q.Term == "" {
			return nil, errors.New("empty term")
		}
		return []string{q.Term}, nil
	})))
	bus.Use(wrapper.NewLogging(logger.NewWithCore(core)))

	_, err := bus.Execute(t.Context(), search{Meta: query.NewMeta(), Term: "go", Token: "t0k3n"})
	require.NoError(t, err)
	_, err = bus.Execute(t.Context(), search{Meta: query.NewMeta()})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "query executed", entries[0].Message)
	input, isMap := entries[0].ContextMap()["input"].(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "***masked-string***", input["token"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "empty term", entries[1].Message)
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	bus := query.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(query.NewHandler(func(context.Context, search) (int, error) { return 3, nil })))
	bus.Use(wrapper.NewTracing())

	res, err := bus.Execute(t.Context(), search{Meta: query.NewMeta(), Term: "go"})

	require.NoError(t, err)
	assert.Equal(t, 3, res)
	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "test.search", recorder.Ended()[0].Name())
}
