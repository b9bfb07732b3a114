package query

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cqrs/internal/router"
	"github.com/rise-and-shine/cqrskit/logger"
)

// Dispatcher executes queries. *Bus implements it.
type Dispatcher interface {
	Execute(ctx context.Context, q Query) (any, error)
}

// Option configures a Bus.
type Option func(*Bus)

// WithStrictRouting makes ambiguous matches fail with AMBIGUOUS_HANDLER.
func WithStrictRouting() Option {
	return func(b *Bus) {
		b.strict = true
	}
}

// Bus routes each query to exactly one handler.
type Bus struct {
	logger logger.Logger
	routes *router.Router[Query, Handler]
	strict bool

	mu          sync.RWMutex
	middlewares []Middleware
}

func NewBus(log logger.Logger, opts ...Option) *Bus {
	b := &Bus{
		logger: log.Named("cqrs.query"),
		routes: router.New[Query, Handler](),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bus) Register(handlers ...Handler) error {
	for _, h := range handlers {
		if !b.routes.Add(h.QueryType(), h) {
			return errx.New(
				"handler already registered for query "+h.QueryType(),
				errx.WithCode(CodeHandlerAlreadyRegistered),
				errx.WithType(errx.T_Internal),
				errx.WithDetails(errx.D{"query_type": h.QueryType(), "handler": fmt.Sprintf("%T", h)}),
			)
		}
	}
	return nil
}

func (b *Bus) MustRegister(handlers ...Handler) {
	if err := b.Register(handlers...); err != nil {
		panic(err)
	}
}

// Use appends middlewares. The first registered middleware is the outermost.
func (b *Bus) Use(middlewares ...Middleware) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.middlewares = append(b.middlewares, middlewares...)
}

// Execute runs q through the middlewares and its handler.
func (b *Bus) Execute(ctx context.Context, q Query) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q == nil {
		return nil, errx.New("invalid query: query is nil",
			errx.WithCode(CodeInvalidQuery),
			errx.WithType(errx.T_Validation),
		)
	}

	b.mu.RLock()
	middlewares := slices.Clone(b.middlewares)
	b.mu.RUnlock()

	return chain(middlewares, b.dispatch)(ctx, q)
}

func (b *Bus) dispatch(ctx context.Context, q Query) (any, error) {
	log := b.logger.WithContext(ctx).With(
		"query_type", q.QueryType(),
		"query_id", q.QueryID(),
	)
	log.Debug("query started")

	start := time.Now()
	res, err := b.handle(ctx, q)
	log = log.With("duration", time.Since(start).String())
	if err != nil {
		log.With("error", err.Error()).Error("query failed")
		return nil, err
	}

	log.Debug("query succeeded")
	return res, nil
}

func (b *Bus) handle(ctx context.Context, q Query) (any, error) {
	handler, outcome := b.routes.Lookup(q.QueryType(), q, b.strict)
	switch outcome {
	case router.NotFound:
		return nil, noHandlerFound(q)
	case router.Ambiguous:
		return nil, ambiguousHandler(q)
	case router.Found:
	}
	return handler.Handle(ctx, q)
}

// Execute dispatches q on d and asserts the result to R.
func Execute[R any](ctx context.Context, d Dispatcher, q Query) (R, error) {
	var zero R

	res, err := d.Execute(ctx, q)
	if err != nil {
		return zero, err
	}

	typed, ok := res.(R)
	if !ok {
		return zero, errx.New(
			"unexpected result type for query "+q.QueryType(),
			errx.WithCode(CodeUnexpectedResultType),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{"query_type": q.QueryType(), "actual": fmt.Sprintf("%T", res)}),
		)
	}
	return typed, nil
}
