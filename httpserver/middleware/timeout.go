package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cqrskit/httpserver"
)

// NewTimeoutMW bounds the request context with duration so that downstream
// dispatchers abort once it elapses.
func NewTimeoutMW(duration time.Duration) httpserver.Middleware {
	return httpserver.Middleware{
		Priority: 800,
		Handler: func(c *fiber.Ctx) error {
			ctx, cancel := context.WithTimeout(c.UserContext(), duration)
			defer cancel()

			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
