package command

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

// Dispatcher executes commands. *Bus implements it.
type Dispatcher interface {
	Execute(ctx context.Context, cmd Command) (any, error)
}

// Option configures a Bus.
type Option func(*Bus)

// WithStrictRouting makes Execute fail with AMBIGUOUS_HANDLER when more than one
// handler claims a command instead of picking the earliest registered one.
func WithStrictRouting() Option {
	return func(b *Bus) {
		b.strict = true
	}
}

// Bus routes each command to exactly one handler through the middleware pipeline.
// Registration and dispatch may happen concurrently.
type Bus struct {
	logger logger.Logger
	routes *router.Router[Command, Handler]
	strict bool

	mu          sync.RWMutex
	middlewares []Middleware
}

// NewBus creates a Bus logging through log.
func NewBus(log logger.Logger, opts ...Option) *Bus {
	b := &Bus{
		logger: log.Named("cqrs.command"),
		routes: router.New[Command, Handler](),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register adds handlers in order. Registering the same handler instance twice
// fails with HANDLER_ALREADY_REGISTERED.
func (b *Bus) Register(handlers ...Handler) error {
	for _, h := range handlers {
		if !b.routes.Add(h.CommandType(), h) {
			return errx.New(
				"handler already registered for command "+h.CommandType(),
				errx.WithCode(CodeHandlerAlreadyRegistered),
				errx.WithType(errx.T_Internal),
				errx.WithDetails(errx.D{"command_type": h.CommandType(), "handler": fmt.Sprintf("%T", h)}),
			)
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
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

// Execute runs cmd through the middlewares and its handler and returns the
// handler's result. Handler errors are returned unchanged.
func (b *Bus) Execute(ctx context.Context, cmd Command) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cmd == nil {
		return nil, InvalidCommand("command is nil", nil)
	}

	b.mu.RLock()
	middlewares := slices.Clone(b.middlewares)
	b.mu.RUnlock()

	return chain(middlewares, b.dispatch)(ctx, cmd)
}

func (b *Bus) dispatch(ctx context.Context, cmd Command) (any, error) {
	log := b.logger.WithContext(ctx).With(
		"command_type", cmd.CommandType(),
		"command_id", cmd.CommandID(),
	)
	log.Info("command started")

	start := time.Now()
	res, err := b.handle(ctx, cmd)
	log = log.With("duration", time.Since(start).String())
	if err != nil {
		log.With("error", err.Error()).Error("command failed")
		return nil, err
	}

	log.Info("command succeeded")
	return res, nil
}

func (b *Bus) handle(ctx context.Context, cmd Command) (any, error) {
	handler, outcome := b.routes.Lookup(cmd.CommandType(), cmd, b.strict)
	switch outcome {
	case router.NotFound:
		return nil, noHandlerFound(cmd)
	case router.Ambiguous:
		return nil, ambiguousHandler(cmd)
	case router.Found:
	}
	return handler.Handle(ctx, cmd)
}

// Execute dispatches cmd on d and asserts the result to R.
func Execute[R any](ctx context.Context, d Dispatcher, cmd Command) (R, error) {
	var zero R

	res, err := d.Execute(ctx, cmd)
	if err != nil {
		return zero, err
	}

	typed, ok := res.(R)
	if !ok {
		return zero, errx.New(
			"unexpected result type for command "+cmd.CommandType(),
			errx.WithCode(CodeUnexpectedResultType),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(errx.D{
				"command_type": cmd.CommandType(),
				"actual":       fmt.Sprintf("%T", res),
			}),
		)
	}
	return typed, nil
}
