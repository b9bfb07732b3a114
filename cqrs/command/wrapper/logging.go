package wrapper

import (
	"context"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/mask"
)

// NewLogging records the start and outcome of every command with its elapsed
// duration and its input. Fields tagged `mask:"true"` are hidden.
func NewLogging(log logger.Logger) command.Middleware {
	log = log.Named("cqrs.command.logger")

	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		l := log.WithContext(ctx).With(
			"command_type", cmd.CommandType(),
			"command_id", cmd.CommandID(),
		)
		l.With("input", mask.Fields(cmd)).Info("executing command")

		start := time.Now()
		res, err := next(ctx, cmd)
		l = l.With("execution_time", time.Since(start).String())

		if err != nil {
			e := errx.AsErrorX(err)
			l.With("error", map[string]any{
				"code":    e.Code(),
				"message": e.Error(),
				"type":    e.Type().String(),
				"trace":   e.Trace(),
				"fields":  e.Fields(),
				"details": e.Details(),
			}).Error("command execution failed")
			return res, err
		}

		l.Info("command executed")
		return res, nil
	})
}
