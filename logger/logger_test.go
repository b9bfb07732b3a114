package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/meta"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logger.Config
		wantErr bool
	}{
		{name: "json", cfg: logger.Config{Level: "info", Encoding: logger.EncodingJSON}},
		{name: "pretty", cfg: logger.Config{Level: "debug", Encoding: logger.EncodingPretty}},
		{name: "disabled ignores invalid level", cfg: logger.Config{Level: "loud", Disable: true}},
		{name: "invalid level", cfg: logger.Config{Level: "loud", Encoding: logger.EncodingJSON}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := logger.New(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestWithContextAddsMeta(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.NewWithCore(core)

	ctx := meta.InjectMetaToContext(context.Background(), map[meta.ContextKey]string{
		meta.TraceID:     "trace-1",
		meta.MessageType: "user.create",
	})
	l.WithContext(ctx).Named("test").Info("hello")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "test", entry.LoggerName)
	assert.Equal(t, "trace-1", entry.ContextMap()["trace_id"])
	assert.Equal(t, "user.create", entry.ContextMap()["message_type"])
}

func TestErrorxExpandsErrxFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.NewWithCore(core)

	l.Errorx(errx.New("boom", errx.WithCode("SOMETHING_FAILED")))
	l.Warnx(errors.New("plain"))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
	assert.Equal(t, "SOMETHING_FAILED", logs.All()[0].ContextMap()["error_code"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
	assert.Equal(t, "plain", logs.All()[1].Message)
}
