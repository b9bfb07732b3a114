package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/httpserver/middleware"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/meta"
)

func newApp(log logger.Logger, routes func(r fiber.Router)) *fiber.App {
	srv := httpserver.NewHTTPServer(httpserver.Config{},
		middleware.NewRecoveryMW(log),
		middleware.NewTracingMW(),
		middleware.NewTimeoutMW(time.Second),
		middleware.NewMetaInjectMW("users", "v0.1.0"),
		middleware.NewLoggerMW(log),
		middleware.NewErrorHandlerMW(false),
	)
	srv.RegisterRouter(routes)
	return srv.App()
}

func TestMetaInjection(t *testing.T) {
	var got map[meta.ContextKey]string
	var deadlineSet bool

	app := newApp(logger.NewNop(), func(r fiber.Router) {
		r.Get("/meta", func(c *fiber.Ctx) error {
			got = meta.ExtractMetaFromContext(c.UserContext())
			_, deadlineSet = c.UserContext().Deadline()
			return c.SendStatus(http.StatusNoContent)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/meta", nil)
	req.Header.Set(middleware.HeaderActorID, "admin-1")
	req.Header.Set(middleware.HeaderCorrelationID, "corr-9")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.True(t, deadlineSet)
	assert.Equal(t, "admin-1", got[meta.ActorID])
	assert.Equal(t, "corr-9", got[meta.CorrelationID])
	assert.Equal(t, "users", got[meta.ServiceName])
	assert.NotEmpty(t, got[meta.TraceID])
}

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	app := newApp(logger.NewWithCore(core), func(r fiber.Router) {
		r.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
		r.Get("/bad", func(*fiber.Ctx) error { return fiber.NewError(http.StatusBadRequest, "bad") })
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)

	entries := logs.FilterLoggerName("http.logger").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusBadRequest, entries[1].ContextMap()["http_status_code"])
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	app := newApp(logger.NewNop(), func(r fiber.Router) {
		r.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestTimeoutCancelsContext(t *testing.T) {
	srv := httpserver.NewHTTPServer(httpserver.Config{}, middleware.NewTimeoutMW(time.Millisecond))
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get("/slow", func(c *fiber.Ctx) error {
			<-c.UserContext().Done()
			if c.UserContext().Err() == context.DeadlineExceeded {
				return c.SendStatus(http.StatusGatewayTimeout)
			}
			return c.SendStatus(http.StatusOK)
		})
	})

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/slow", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}
