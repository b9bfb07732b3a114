// Package app is the composition root of the user service: it binds every
// component into a container and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/container"
	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/logger"
)

// App owns the container and the resources it opened.
type App struct {
	cfg       Config
	logger    logger.Logger
	container *container.Container

	mu      sync.Mutex
	closers []func() error
}

// New binds the application. Bindings are resolved lazily; call Service or
// Run to build them.
func New(ctx context.Context, cfg Config, log logger.Logger) *App {
	a := &App{
		cfg:    cfg,
		logger: log.Named("app"),
	}
	a.container = NewContainer(ctx, cfg, log, a.addCloser)
	return a
}

func (a *App) addCloser(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, fn)
}

// Container exposes the bindings, e.g. to read the audit trail in tests.
func (a *App) Container() *container.Container {
	return a.container
}

// Service resolves the user service.
func (a *App) Service() (user.Service, error) {
	return container.Resolve[user.Service](a.container, IDUserService)
}

// Run serves HTTP until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	srv, err := container.Resolve[*httpserver.HTTPServer](a.container, IDHTTPServer)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("http server listening on %s", a.cfg.HTTP.Address())
		errCh <- srv.Start()
	}()

	select {
	case err = <-errCh:
		return errx.Wrap(err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down http server")
	if err = srv.Stop(); err != nil {
		return errx.Wrap(err)
	}
	return nil
}

// Close releases opened resources in reverse order of acquisition.
func (a *App) Close() error {
	a.mu.Lock()
	closers := slices.Clone(a.closers)
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for _, fn := range slices.Backward(closers) {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errx.Wrap(errors.Join(errs...))
}
