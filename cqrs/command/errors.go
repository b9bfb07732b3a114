package command

import (
	"fmt"

	"github.com/code19m/errx"
)

const (
	CodeNoHandlerFound           = "NO_HANDLER_FOUND"
	CodeAmbiguousHandler         = "AMBIGUOUS_HANDLER"
	CodeHandlerAlreadyRegistered = "HANDLER_ALREADY_REGISTERED"
	CodeInvalidCommand           = "INVALID_COMMAND"
	CodeUnexpectedResultType     = "UNEXPECTED_RESULT_TYPE"
)

func noHandlerFound(cmd Command) error {
	return errx.New(
		fmt.Sprintf("no handler found for command %s (%T)", cmd.CommandType(), cmd),
		errx.WithCode(CodeNoHandlerFound),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"command_type": cmd.CommandType(),
			"command_id":   cmd.CommandID(),
			"go_type":      fmt.Sprintf("%T", cmd),
		}),
	)
}

func ambiguousHandler(cmd Command) error {
	return errx.New(
		"more than one handler can handle command "+cmd.CommandType(),
		errx.WithCode(CodeAmbiguousHandler),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"command_type": cmd.CommandType()}),
	)
}

// InvalidCommand builds the error returned for structurally malformed commands.
func InvalidCommand(reason string, details errx.D) error {
	return errx.New(
		"invalid command: "+reason,
		errx.WithCode(CodeInvalidCommand),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(details),
	)
}
