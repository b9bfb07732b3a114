package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/logger"
)

// NewLoggerMW logs every request once it has been handled.
// The level follows the status code: info below 400, warn for 4xx and error for 5xx.
func NewLoggerMW(log logger.Logger) httpserver.Middleware {
	log = log.Named("http.logger")

	return httpserver.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := handleWithRecovery(c)

			statusCode := c.Response().StatusCode()
			l := log.WithContext(c.UserContext()).With(
				"http_status_code", statusCode,
				"http_method", c.Method(),
				"http_path", c.Path(),
				"http_route", c.Route().Path,
				"duration", time.Since(start).String(),
				"query_params", c.Queries(),
				"request_size", c.Request().Header.ContentLength(),
			)

			switch {
			case err != nil && statusCode >= fiber.StatusInternalServerError:
				l.Errorx(err)
			case err != nil:
				l.Warnx(err)
			case statusCode >= fiber.StatusInternalServerError:
				l.Error("request failed")
			case statusCode >= fiber.StatusBadRequest:
				l.Warn("request rejected")
			default:
				l.Info("request processed successfully")
			}

			return err
		},
	}
}

func handleWithRecovery(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError("panic recovered at logger middleware", r)
		}
	}()

	return c.Next()
}
