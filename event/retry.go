package event

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/logger"
)

const (
	CodePublishExhausted = "PUBLISH_EXHAUSTED"

	DefaultMaxRetries = 3
	DefaultRetryDelay = 100 * time.Millisecond
)

// RetryOption configures a RetryPublisher.
type RetryOption func(*RetryPublisher)

// WithMaxRetries sets the total number of publish attempts. Values below one
// are ignored.
func WithMaxRetries(n int) RetryOption {
	return func(p *RetryPublisher) {
		if n > 0 {
			p.maxRetries = n
		}
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) RetryOption {
	return func(p *RetryPublisher) {
		if d >= 0 {
			p.retryDelay = d
		}
	}
}

// RetryPublisher wraps a Publisher and re-attempts failed publications.
// The delay before attempt k+1 is retryDelay*k.
type RetryPublisher struct {
	delegate   Publisher
	logger     logger.Logger
	maxRetries int
	retryDelay time.Duration
}

var _ Publisher = (*RetryPublisher)(nil)

// NewRetryPublisher wraps delegate.
func NewRetryPublisher(delegate Publisher, log logger.Logger, opts ...RetryOption) *RetryPublisher {
	p := &RetryPublisher{
		delegate:   delegate,
		logger:     log.Named("event.retry"),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish delegates e until it succeeds or maxRetries attempts failed, in which
// case a PUBLISH_EXHAUSTED error wrapping the last failure is returned.
func (p *RetryPublisher) Publish(ctx context.Context, e Event) error {
	log := p.logger.WithContext(ctx).With("event_type", e.EventType(), "event_id", e.EventID())

	attempts := 0
	err := retry.Do(
		func() error {
			attempts++
			return p.delegate.Publish(ctx, e)
		},
		retry.Attempts(uint(p.maxRetries)), //nolint:gosec // positive by construction
		// n is the number of attempts already made when the delay is computed
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return p.retryDelay * time.Duration(n)
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if int(n)+1 >= p.maxRetries { //nolint:gosec // attempt counter is small
				return
			}
			log.With("attempt", n+1).
				With("max_attempts", p.maxRetries).
				With("error", err.Error()).
				Warn("retrying event publication")
		}),
		retry.Context(ctx),
	)
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	return errx.Wrap(err,
		errx.WithCode(CodePublishExhausted),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"attempts":   attempts,
			"event_type": e.EventType(),
			"event_id":   e.EventID(),
		}),
	)
}

// PublishAll publishes events in order, each with its own retries, and stops
// at the first event that exhausts them.
func (p *RetryPublisher) PublishAll(ctx context.Context, events []Event) error {
	for _, e := range events {
		if err := p.Publish(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
