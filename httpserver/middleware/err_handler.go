package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cqrskit/httpserver"
)

// NewErrorHandlerMW renders handler errors before the logger middleware sees them,
// so the logged status code matches the response.
func NewErrorHandlerMW(hideDetails bool) httpserver.Middleware {
	return httpserver.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			if c.Response() != nil && c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return httpserver.WriteErrorResponse(c, err, hideDetails)
		},
	}
}
