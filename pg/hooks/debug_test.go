package hooks_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/uptrace/bun"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/pg/hooks"
)

func TestDebugHook(t *testing.T) {
	tests := []struct {
		name      string
		opts      []hooks.DebugHookOption
		err       error
		age       time.Duration
		wantLevel zapcore.Level
		wantLogs  int
	}{
		{name: "verbose success", wantLevel: zapcore.DebugLevel, wantLogs: 1},
		{name: "quiet success", opts: []hooks.DebugHookOption{hooks.WithVerbose(false)}, wantLogs: 0},
		{name: "failure", err: errors.New("syntax error"), wantLevel: zapcore.ErrorLevel, wantLogs: 1},
		{name: "no rows", err: sql.ErrNoRows, wantLevel: zapcore.WarnLevel, wantLogs: 1},
		{name: "tx done is not a failure", err: sql.ErrTxDone, wantLevel: zapcore.DebugLevel, wantLogs: 1},
		{
			name:      "slow query",
			opts:      []hooks.DebugHookOption{hooks.WithVerbose(false), hooks.WithSlowQueryThreshold(time.Millisecond)},
			age:       time.Second,
			wantLevel: zapcore.WarnLevel,
			wantLogs:  1,
		},
		{name: "disabled", opts: []hooks.DebugHookOption{hooks.WithEnabled(false)}, err: errors.New("x"), wantLogs: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			hook := hooks.NewDebugHook(logger.NewWithCore(core), tc.opts...)

			event := &bun.QueryEvent{
				Query:     `SELECT "id" FROM "users"`,
				StartTime: time.Now().Add(-tc.age),
				Err:       tc.err,
			}
			ctx := hook.BeforeQuery(t.Context(), event)
			hook.AfterQuery(ctx, event)

			assert.Equal(t, tc.wantLogs, logs.Len())
			if tc.wantLogs > 0 {
				entry := logs.All()[0]
				assert.Equal(t, tc.wantLevel, entry.Level)
				assert.Equal(t, "SELECT id FROM users", entry.ContextMap()["query"])
			}
		})
	}
}
