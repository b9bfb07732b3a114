package query

import (
	"fmt"

	"github.com/code19m/errx"
)

const (
	CodeNoHandlerFound           = "NO_HANDLER_FOUND"
	CodeAmbiguousHandler         = "AMBIGUOUS_HANDLER"
	CodeHandlerAlreadyRegistered = "HANDLER_ALREADY_REGISTERED"
	CodeInvalidQuery             = "INVALID_QUERY"
	CodeUnexpectedResultType     = "UNEXPECTED_RESULT_TYPE"
)

func noHandlerFound(q Query) error {
	return errx.New(
		fmt.Sprintf("no handler found for query %s (%T)", q.QueryType(), q),
		errx.WithCode(CodeNoHandlerFound),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{
			"query_type": q.QueryType(),
			"query_id":   q.QueryID(),
			"go_type":    fmt.Sprintf("%T", q),
		}),
	)
}

func ambiguousHandler(q Query) error {
	return errx.New(
		"more than one handler can handle query "+q.QueryType(),
		errx.WithCode(CodeAmbiguousHandler),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(errx.D{"query_type": q.QueryType()}),
	)
}
