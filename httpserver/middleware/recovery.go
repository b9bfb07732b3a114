package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/logger"
)

// NewRecoveryMW creates a middleware that recovers from panics in the request
// handling chain and converts them to internal errx errors.
func NewRecoveryMW(log logger.Logger) httpserver.Middleware {
	log = log.Named("http.recovery")

	return httpserver.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = panicError("panic recovered", r)
					log.WithContext(c.UserContext()).Errorx(err)
				}
			}()

			return c.Next()
		},
	}
}
