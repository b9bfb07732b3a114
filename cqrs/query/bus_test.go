package query_test

import (
	"context"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/cqrs/query"
	"github.com/rise-and-shine/cqrskit/logger"
)

type findBook struct {
	query.Meta
	Title string
}

func (findBook) QueryType() string { return "test.find_book" }

type listBooks struct {
	query.Meta
}

func (listBooks) QueryType() string { return "test.list_books" }

func TestExecute(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := query.NewBus(logger.NewWithCore(core))
	calls := 0
	require.NoError(t, bus.Register(query.NewHandler(func(_ context.Context, q findBook) (string, error) {
		calls++
		return "found " + q.Title, nil
	})))

	res, err := query.Execute[string](t.Context(), bus, findBook{Meta: query.NewMeta(), Title: "dune"})

	require.NoError(t, err)
	assert.Equal(t, "found dune", res)
	assert.Equal(t, 1, calls)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "query started", entries[0].Message)
	assert.Equal(t, "query succeeded", entries[1].Message)
	for _, e := range entries {
		assert.Equal(t, zapcore.DebugLevel, e.Level)
		assert.Equal(t, "test.find_book", e.ContextMap()["query_type"])
	}
}

func TestExecuteNoHandler(t *testing.T) {
	bus := query.NewBus(logger.NewNop())

	_, err := bus.Execute(t.Context(), listBooks{Meta: query.NewMeta()})

	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, query.CodeNoHandlerFound))
	assert.Contains(t, err.Error(), "test.list_books")
}

func TestExecuteTieBreak(t *testing.T) {
	first := query.NewHandler(func(context.Context, findBook) (string, error) { return "first", nil })
	second := query.NewHandler(func(context.Context, findBook) (string, error) { return "second", nil })

	bus := query.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(first, second))
	res, err := bus.Execute(t.Context(), findBook{Meta: query.NewMeta()})
	require.NoError(t, err)
	assert.Equal(t, "first", res)

	strict := query.NewBus(logger.NewNop(), query.WithStrictRouting())
	require.NoError(t, strict.Register(first, second))
	_, err = strict.Execute(t.Context(), findBook{Meta: query.NewMeta()})
	assert.True(t, errx.IsCodeIn(err, query.CodeAmbiguousHandler))

	err = strict.Register(first)
	assert.True(t, errx.IsCodeIn(err, query.CodeHandlerAlreadyRegistered))
}

func TestMiddlewareOrder(t *testing.T) {
	var trace []string
	record := func(name string) query.Middleware {
		return query.MiddlewareFunc(func(ctx context.Context, q query.Query, next query.Next) (any, error) {
			trace = append(trace, name+" in")
			defer func() { trace = append(trace, name+" out") }()
			return next(ctx, q)
		})
	}

	bus := query.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(query.NewHandler(func(context.Context, findBook) (int, error) {
		trace = append(trace, "handler")
		return 1, nil
	})))
	bus.Use(record("a"), record("b"))

	_, err := bus.Execute(t.Context(), findBook{Meta: query.NewMeta()})

	require.NoError(t, err)
	assert.Equal(t, []string{"a in", "b in", "handler", "b out", "a out"}, trace)
}

func TestExecuteCancelled(t *testing.T) {
	bus := query.NewBus(logger.NewNop())
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := bus.Execute(ctx, findBook{Meta: query.NewMeta()})

	require.ErrorIs(t, err, context.Canceled)
}

func TestExecuteResultMismatch(t *testing.T) {
	bus := query.NewBus(logger.NewNop())
	require.NoError(t, bus.Register(query.NewHandler(func(context.Context, findBook) (int, error) { return 1, nil })))

	_, err := query.Execute[string](t.Context(), bus, findBook{Meta: query.NewMeta()})

	assert.True(t, errx.IsCodeIn(err, query.CodeUnexpectedResultType))
}
