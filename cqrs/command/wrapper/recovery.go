package wrapper

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/logger"
)

const (
	CodePanicRecovered = "PANIC_RECOVERED"

	stackTraceSize = 4096
)

// NewRecovery converts panics raised further down the pipeline into errors.
func NewRecovery(log logger.Logger) command.Middleware {
	log = log.Named("cqrs.command.recovery")

	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (res any, err error) {
		defer func() {
			if r := recover(); r != nil {
				stackTrace := make([]byte, stackTraceSize)
				stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

				log.WithContext(ctx).
					With("command_type", cmd.CommandType()).
					With("stack_trace", string(stackTrace)).
					With("panic_values", fmt.Sprintf("%v", r)).
					Error("panic recovered in command handler")

				res = nil
				err = errx.New("panic recovered in command handler",
					errx.WithCode(CodePanicRecovered),
					errx.WithType(errx.T_Internal),
					errx.WithDetails(errx.D{
						"command_type": cmd.CommandType(),
						"stack_trace":  string(stackTrace),
						"panic_values": fmt.Sprintf("%v", r),
					}),
				)
			}
		}()

		return next(ctx, cmd)
	})
}
