package httpserver

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cqrskit/meta"
)

const (
	// CodeRouterError is used when fiber itself rejects a request (unknown route, bad method, body too large).
	CodeRouterError = "ROUTER_ERROR"
)

// WriteErrorResponse writes a standardized error response to the fiber context.
// The HTTP status is derived from the errx type of err.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := mapAnyErrorToErrorX(err)

	c.Status(mapErrorTypeToHTTPStatusCode(e.Type()))
	_ = c.JSON(ErrorResponse{
		TraceID: traceIDFromCtx(c),
		Error:   buildErrorSchema(e, hideDetails),
	})

	return e
}

// customErrorHandler returns a fiber error handler that ensures consistent error responses.
// If the response status code is already an error (>= 400) it is left untouched.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		r := ctx.Response()

		if r != nil && r.StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		_ = WriteErrorResponse(ctx, err, hideDetails)
		return nil
	}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	TraceID string      `json:"trace_id,omitempty"`
	Error   ErrorSchema `json:"error"`
}

// ErrorSchema describes a single error returned to clients.
type ErrorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

func buildErrorSchema(e errx.ErrorX, hideDetails bool) ErrorSchema {
	schema := ErrorSchema{
		Code:    e.Code(),
		Message: e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		schema.Trace = e.Trace()
		schema.Details = e.Details()
	}
	return schema
}

func traceIDFromCtx(c *fiber.Ctx) string {
	traceID, _ := c.UserContext().Value(meta.TraceID).(string)
	return traceID
}

func mapErrorTypeToHTTPStatusCode(t errx.Type) int {
	switch t {
	case errx.T_Authentication:
		return fiber.StatusUnauthorized
	case errx.T_Forbidden:
		return fiber.StatusForbidden
	case errx.T_NotFound:
		return fiber.StatusNotFound
	case errx.T_Validation:
		return fiber.StatusBadRequest
	case errx.T_Conflict:
		return fiber.StatusConflict
	case errx.T_Throttling:
		return fiber.StatusTooManyRequests
	case errx.T_Internal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// mapAnyErrorToErrorX converts any error to errx.ErrorX.
// fiber errors are translated to the errx type matching their status code.
func mapAnyErrorToErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		var t errx.Type

		switch {
		case fiberErr.Code == fiber.StatusUnauthorized:
			t = errx.T_Authentication
		case fiberErr.Code == fiber.StatusForbidden:
			t = errx.T_Forbidden
		case fiberErr.Code == fiber.StatusNotFound:
			t = errx.T_NotFound
		case fiberErr.Code == fiber.StatusConflict:
			t = errx.T_Conflict
		case fiberErr.Code == fiber.StatusTooManyRequests:
			t = errx.T_Throttling
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			t = errx.T_Validation
		default:
			t = errx.T_Internal
		}

		err = errx.New(
			fiberErr.Message,
			errx.WithCode(CodeRouterError),
			errx.WithType(t),
			errx.WithDetails(errx.D{
				"fiber_code": fiberErr.Code,
			}),
		)
	}

	return errx.AsErrorX(err)
}
