package wrapper

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cqrs/command"
	"github.com/rise-and-shine/cqrskit/val"
)

// NewValidation rejects malformed commands before they reach their handler.
// A command without an id or timestamp fails with INVALID_COMMAND; payload
// fields are then checked against their `validate` tags.
func NewValidation() command.Middleware {
	return command.MiddlewareFunc(func(ctx context.Context, cmd command.Command, next command.Next) (any, error) {
		details := errx.D{"command_type": cmd.CommandType()}

		if cmd.CommandID() == "" {
			details["missing"] = "command_id"
			return nil, command.InvalidCommand("missing command id", details)
		}
		if cmd.CommandTime().IsZero() {
			details["missing"] = "created_at"
			return nil, command.InvalidCommand("missing command timestamp", details)
		}

		if err := val.ValidateSchema(cmd); err != nil {
			return nil, err
		}

		return next(ctx, cmd)
	})
}
