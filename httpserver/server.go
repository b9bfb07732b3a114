// Package httpserver provides a fiber based HTTP server whose error responses are
// derived from errx errors.
package httpserver

import (
	"github.com/gofiber/fiber/v2"
)

// HTTPServer provides an HTTP server with prioritized middleware registration.
type HTTPServer struct {
	cfg    Config
	router *fiber.App
}

// NewHTTPServer creates a new HTTPServer with the provided configuration and middleware.
//
// Middlewares are applied in order of descending priority. Errors returned by handlers
// are rendered by WriteErrorResponse unless a response status >= 400 was already written.
func NewHTTPServer(cfg Config, middlewares ...Middleware) *HTTPServer {
	router := fiber.New(fiber.Config{
		ReadTimeout:              cfg.ReadTimeout,
		WriteTimeout:             cfg.WriteTimeout,
		IdleTimeout:              cfg.IdleTimeout,
		ErrorHandler:             customErrorHandler(cfg.HideErrorDetails),
		DisableStartupMessage:    true,
		Immutable:                true,
		BodyLimit:                cfg.BodyLimit,
		EnableSplittingOnParsers: true,
	})

	applyMiddlewares(router, middlewares)

	return &HTTPServer{
		cfg:    cfg,
		router: router,
	}
}

// RegisterRouter registers routes with the server using the provided register function.
func (s *HTTPServer) RegisterRouter(registerFunc func(r fiber.Router)) {
	registerFunc(s.router)
}

// App exposes the underlying fiber application, mostly for App.Test in tests.
func (s *HTTPServer) App() *fiber.App {
	return s.router
}

// Start begins listening for incoming HTTP requests on the configured address.
func (s *HTTPServer) Start() error {
	return s.router.Listen(s.cfg.Address())
}

// Stop gracefully stops the server, allowing ongoing requests to complete.
func (s *HTTPServer) Stop() error {
	return s.router.Shutdown()
}
