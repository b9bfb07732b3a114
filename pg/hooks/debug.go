// Package hooks contains Bun query hooks.
package hooks

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cqrskit/logger"
)

var _ bun.QueryHook = (*DebugHook)(nil)

// DebugHook logs queries through the application logger with slow query detection.
type DebugHook struct {
	logger             logger.Logger
	enabled            bool
	verbose            bool
	slowQueryThreshold time.Duration
}

// DebugHookOption configures a DebugHook.
type DebugHookOption func(*DebugHook)

// NewDebugHook creates a query hook logging to log. By default it is enabled,
// verbose, and treats queries over 100ms as slow.
func NewDebugHook(log logger.Logger, opts ...DebugHookOption) *DebugHook {
	hook := &DebugHook{
		logger:             log.Named("bun_debug_hook"),
		enabled:            true,
		verbose:            true,
		slowQueryThreshold: 100 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(hook)
	}

	return hook
}

// WithEnabled sets whether the query hook logs anything.
func WithEnabled(enabled bool) DebugHookOption {
	return func(h *DebugHook) {
		h.enabled = enabled
	}
}

// WithVerbose sets whether successful queries are logged too. Otherwise only
// failures, empty results and slow queries are.
func WithVerbose(verbose bool) DebugHookOption {
	return func(h *DebugHook) {
		h.verbose = verbose
	}
}

// WithSlowQueryThreshold sets the duration from which queries are logged at warn
// level. Zero disables slow query detection.
func WithSlowQueryThreshold(threshold time.Duration) DebugHookOption {
	return func(h *DebugHook) {
		h.slowQueryThreshold = threshold
	}
}

func (h *DebugHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *DebugHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if !h.enabled {
		return
	}

	duration := time.Since(event.StartTime)

	isNoRowsError := errors.Is(event.Err, sql.ErrNoRows)
	// a finished transaction is not a query failure
	isTxDoneError := errors.Is(event.Err, sql.ErrTxDone)
	hasError := event.Err != nil && !isNoRowsError && !isTxDoneError
	isSlow := h.slowQueryThreshold > 0 && duration >= h.slowQueryThreshold

	if !h.verbose && !hasError && !isNoRowsError && !isSlow {
		return
	}

	entry := h.logger.
		WithContext(ctx).
		With("query", strings.ReplaceAll(event.Query, "\"", "")).
		With("duration", duration.Round(time.Microsecond).String())

	msg := "[bun-debug] - " + event.Operation()
	switch {
	case hasError:
		entry.With("error", event.Err.Error()).Error(msg)
	case isNoRowsError:
		entry.With("error", event.Err.Error()).Warn(msg)
	case isSlow:
		entry.Warn(msg)
	default:
		entry.Debug(msg)
	}
}
