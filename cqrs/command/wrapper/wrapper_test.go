package wrapper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/code19m/errx"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/cqrs/command/wrapper"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/meta"
	"github.com/rise-and-shine/cqrskit/val"
)

type register struct {
	command.Meta
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required" mask:"true"`
}

func (register) CommandType() string { return "test.register" }

func validRegister() register {
	return register{Meta: command.NewMeta(), Email: "a@b.com", Password: "secret"}
}

// newBus returns a bus with one handler for register running fn.
func newBus(t *testing.T, fn func(context.Context, register) (string, error), mws ...command.Middleware) *command.Bus {
	t.Helper()
	bus := command.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(command.NewHandler(fn)))
	bus.Use(mws...)
	return bus
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name     string
		cmd      register
		wantCode string
	}{
		{name: "valid", cmd: validRegister()},
		{
			name:     "missing id",
			cmd:      register{Meta: command.Meta{CreatedAt: time.Now()}, Email: "a@b.com", Password: "x"},
			wantCode: command.CodeInvalidCommand,
		},
		{
			name:     "missing timestamp",
			cmd:      register{Meta: command.Meta{ID: "id-1"}, Email: "a@b.com", Password: "x"},
			wantCode: command.CodeInvalidCommand,
		},
		{
			name:     "invalid payload",
			cmd:      register{Meta: command.NewMeta(), Email: "nope"},
			wantCode: val.CodeValidationFailed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calls := 0
			bus := newBus(t, func(context.Context, register) (string, error) {
				calls++
				return "ok", nil
			}, wrapper.NewValidation())

			res, err := bus.Execute(t.Context(), tc.cmd)

			if tc.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "ok", res)
				assert.Equal(t, 1, calls)
				return
			}
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, tc.wantCode))
			assert.Equal(t, errx.T_Validation, errx.GetType(err))
			assert.Zero(t, calls, "handler must not run")
		})
	}
}

func TestLoggingMasksInput(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := errors.New("boom")
	bus := newBus(t, func(_ context.Context, cmd register) (string, error) {
		if cmd.Email == "fail@b.com" {
			return "", boom
		}
		return "ok", nil
	}, wrapper.NewLogging(logger.NewWithCore(core)))

	_, err := bus.Execute(t.Context(), validRegister())
	require.NoError(t, err)

	failing := validRegister()
	failing.Email = "fail@b.com"
	_, err = bus.Execute(t.Context(), failing)
	require.ErrorIs(t, err, boom)

	entries := logs.FilterLoggerName("cqrs.command.logger").All()
	require.Len(t, entries, 4)

	input, isMap := entries[0].ContextMap()["input"].(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "a@b.com", input["email"])
	assert.Equal(t, "***masked-string***", input["password"])

	assert.Equal(t, "command executed", entries[1].Message)
	assert.Contains(t, entries[1].ContextMap(), "execution_time")
	assert.Equal(t, "command execution failed", entries[3].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := newBus(t, func(context.Context, register) (string, error) {
		panic("kaboom")
	}, wrapper.NewRecovery(logger.NewWithCore(core)))

	res, err := bus.Execute(t.Context(), validRegister())

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errx.IsCodeIn(err, wrapper.CodePanicRecovered))
	assert.Equal(t, 1, logs.FilterMessage("panic recovered in command handler").Len())
}

func TestRecoveryPassesErrorsThrough(t *testing.T) {
	boom := errors.New("boom")
	bus := newBus(t, func(context.Context, register) (string, error) {
		return "", boom
	}, wrapper.NewRecovery(logger.NewNop()))

	_, err := bus.Execute(t.Context(), validRegister())

	assert.Same(t, boom, err)
}

func TestTimeout(t *testing.T) {
	bus := newBus(t, func(ctx context.Context, _ register) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}, wrapper.NewTimeout(10*time.Millisecond))

	_, err := bus.Execute(t.Context(), validRegister())

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMetaInject(t *testing.T) {
	var got map[meta.ContextKey]string
	bus := newBus(t, func(ctx context.Context, _ register) (string, error) {
		got = meta.ExtractMetaFromContext(ctx)
		return "ok", nil
	}, wrapper.NewMetaInject("users", "v1.2.3"))

	cmd := validRegister()
	_, err := bus.Execute(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "users", got[meta.ServiceName])
	assert.Equal(t, "v1.2.3", got[meta.ServiceVersion])
	assert.Equal(t, cmd.ID, got[meta.MessageID])
	assert.Equal(t, cmd.ID, got[meta.CorrelationID])
	assert.Equal(t, "test.register", got[meta.MessageType])
	assert.NotEmpty(t, got[meta.TraceID])
}

func TestMetaInjectKeepsIncomingTraceAndCorrelation(t *testing.T) {
	var got map[meta.ContextKey]string
	bus := newBus(t, func(ctx context.Context, _ register) (string, error) {
		got = meta.ExtractMetaFromContext(ctx)
		return "ok", nil
	}, wrapper.NewMetaInject("users", "v1"))

	ctx := meta.InjectMetaToContext(t.Context(), map[meta.ContextKey]string{
		meta.TraceID:       "trace-1",
		meta.CorrelationID: "corr-1",
	})
	_, err := bus.Execute(ctx, validRegister())

	require.NoError(t, err)
	assert.Equal(t, "trace-1", got[meta.TraceID])
	assert.Equal(t, "corr-1", got[meta.CorrelationID])
}

func TestTracing(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	boom := errors.New("boom")
	bus := newBus(t, func(context.Context, register) (string, error) {
		return "", boom
	}, wrapper.NewTracing())

	_, err := bus.Execute(t.Context(), validRegister())
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "test.register", spans[0].Name())
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestMetrics(t *testing.T) {
	registry := metrics.NewRegistry()
	fail := false
	bus := newBus(t, func(context.Context, register) (string, error) {
		if fail {
			return "", errors.New("boom")
		}
		return "ok", nil
	}, wrapper.NewMetrics(registry))

	_, err := bus.Execute(t.Context(), validRegister())
	require.NoError(t, err)
	fail = true
	_, err = bus.Execute(t.Context(), validRegister())
	require.Error(t, err)

	timer, isTimer := registry.Get("cqrs.command.test.register.duration").(metrics.Timer)
	require.True(t, isTimer)
	assert.Equal(t, int64(2), timer.Count())

	counter, isCounter := registry.Get("cqrs.command.test.register.failures").(metrics.Counter)
	require.True(t, isCounter)
	assert.Equal(t, int64(1), counter.Count())
}

func TestMiddlewaresReturnHandlerErrors(t *testing.T) {
	boom := errors.New("boom")
	bus := newBus(t, func(context.Context, register) (string, error) { return "", boom },
		wrapper.NewLogging(logger.NewNop()),
		wrapper.NewValidation(),
		wrapper.NewRecovery(logger.NewNop()),
		wrapper.NewTimeout(time.Second),
		wrapper.NewTracing(),
		wrapper.NewMetaInject("svc", "v"),
		wrapper.NewMetrics(metrics.NewRegistry()),
	)

	_, err := bus.Execute(t.Context(), validRegister())

	assert.Same(t, boom, err)
}
