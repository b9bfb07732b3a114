package app

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/code19m/errx"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/cqrskit/container"
	"github.com/rise-and-shine/cqrskit/cqrs/command"
	cmdwrapper "github.com/rise-and-shine/cqrskit/cqrs/command/wrapper"
	"github.com/rise-and-shine/cqrskit/cqrs/query"
	qrywrapper "github.com/rise-and-shine/cqrskit/cqrs/query/wrapper"
	"github.com/rise-and-shine/cqrskit/event"
	"github.com/rise-and-shine/cqrskit/event/bridge"
	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/httpserver/middleware"
	"github.com/rise-and-shine/cqrskit/internal/user"
	"github.com/rise-and-shine/cqrskit/internal/user/httpapi"
	"github.com/rise-and-shine/cqrskit/internal/user/pgstore"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/pg"
)

// NewContainer binds every service of the application. Nothing is built until
// it is first resolved. Resources that need closing are handed to onClose.
func NewContainer(ctx context.Context, cfg Config, log logger.Logger, onClose func(func() error)) *container.Container {
	c := container.New()

	c.Bind(IDConfig).ToValue(cfg)
	c.Bind(IDLogger).ToValue(log)
	c.Bind(IDMetricsRegistry).ToSingleton(func(*container.Container) (any, error) {
		return metrics.NewRegistry(), nil
	})
	c.Bind(IDPagination).To(func() any { return cfg.Pagination })

	bindStorage(ctx, c, cfg, log, onClose)
	bindEvents(c, cfg, log, onClose)
	bindBuses(c, cfg, log)
	bindUser(c)
	bindHTTP(c, cfg, log)

	return c
}

func bindStorage(ctx context.Context, c *container.Container, cfg Config, log logger.Logger, onClose func(func() error)) {
	if cfg.Postgres == nil {
		c.Bind(IDUserRepository).ToSingleton(func(*container.Container) (any, error) {
			return user.NewMemoryRepository(), nil
		})
		return
	}

	c.Bind(IDDatabase).ToSingleton(func(*container.Container) (any, error) {
		db, err := pg.NewBunDB(ctx, *cfg.Postgres, log)
		if err != nil {
			return nil, err
		}
		onClose(db.Close)
		return db, nil
	})

	c.Bind(IDUserRepository).ToSingleton(func(c *container.Container) (any, error) {
		db, err := container.Resolve[*bun.DB](c, IDDatabase)
		if err != nil {
			return nil, err
		}
		if err = pgstore.CreateSchema(ctx, db); err != nil {
			return nil, err
		}
		return pgstore.New(db), nil
	})
}

func bindEvents(c *container.Container, cfg Config, log logger.Logger, onClose func(func() error)) {
	c.Bind(IDAuditTrail).ToSingleton(func(*container.Container) (any, error) {
		return user.NewAuditTrail(), nil
	})
	c.Bind(IDStatistics).ToSingleton(func(*container.Container) (any, error) {
		return user.NewStatistics(), nil
	})
	c.Bind(IDWelcomeNotifier).ToSingleton(func(*container.Container) (any, error) {
		return user.NewWelcomeNotifier(log), nil
	})

	if cfg.Events.Kafka != nil {
		c.Bind(IDBrokerSink).ToSingleton(func(*container.Container) (any, error) {
			publisher, err := bridge.NewKafkaPublisher(*cfg.Events.Kafka, log)
			if err != nil {
				return nil, err
			}
			onClose(publisher.Close)
			return publisher, nil
		})
	}

	c.Bind(IDEventBus).ToSingleton(func(c *container.Container) (any, error) {
		bus := event.NewBus(log)

		audit, err := container.Resolve[*user.AuditTrail](c, IDAuditTrail)
		if err != nil {
			return nil, err
		}
		stats, err := container.Resolve[*user.Statistics](c, IDStatistics)
		if err != nil {
			return nil, err
		}
		welcome, err := container.Resolve[*user.WelcomeNotifier](c, IDWelcomeNotifier)
		if err != nil {
			return nil, err
		}

		audit.Subscribe(bus)
		stats.Subscribe(bus)
		welcome.Subscribe(bus)

		if c.Has(IDBrokerSink) {
			sink, sinkErr := container.Resolve[message.Publisher](c, IDBrokerSink)
			if sinkErr != nil {
				return nil, sinkErr
			}
			bridge.NewForwarder(sink, cfg.Events.Kafka.Topic, log).Attach(bus, user.EventTypes...)
		}

		return bus, nil
	})

	c.Bind(IDEventPublisher).ToSingleton(func(c *container.Container) (any, error) {
		bus, err := container.Resolve[*event.Bus](c, IDEventBus)
		if err != nil {
			return nil, err
		}
		return event.NewRetryPublisher(bus, log,
			event.WithMaxRetries(cfg.Events.MaxRetries),
			event.WithRetryDelay(cfg.Events.RetryDelay),
		), nil
	})
}

func bindBuses(c *container.Container, cfg Config, log logger.Logger) {
	c.Bind(IDCommandBus).ToSingleton(func(c *container.Container) (any, error) {
		repo, err := container.Resolve[user.Repository](c, IDUserRepository)
		if err != nil {
			return nil, err
		}
		publisher, err := container.Resolve[event.Publisher](c, IDEventPublisher)
		if err != nil {
			return nil, err
		}
		registry, err := container.Resolve[metrics.Registry](c, IDMetricsRegistry)
		if err != nil {
			return nil, err
		}

		var opts []command.Option
		if cfg.Commands.StrictRouting {
			opts = append(opts, command.WithStrictRouting())
		}

		bus := command.NewBus(log, opts...)
		bus.Use(
			cmdwrapper.NewRecovery(log),
			cmdwrapper.NewTracing(),
			cmdwrapper.NewMetaInject(cfg.Service.Name, cfg.Service.Version),
			cmdwrapper.NewLogging(log),
			cmdwrapper.NewMetrics(registry),
			cmdwrapper.NewTimeout(cfg.Commands.Timeout),
			cmdwrapper.NewValidation(),
		)

		if err = user.NewCommandHandlers(repo, publisher, log).Register(bus); err != nil {
			return nil, errx.Wrap(err)
		}
		return bus, nil
	})

	c.Bind(IDQueryBus).ToSingleton(func(c *container.Container) (any, error) {
		repo, err := container.Resolve[user.Repository](c, IDUserRepository)
		if err != nil {
			return nil, err
		}
		pages, err := container.Resolve[pagination.Config](c, IDPagination)
		if err != nil {
			return nil, err
		}

		bus := query.NewBus(log)
		bus.Use(
			qrywrapper.NewTracing(),
			qrywrapper.NewLogging(log),
		)

		if err = user.NewQueryHandlers(repo, pages).Register(bus); err != nil {
			return nil, errx.Wrap(err)
		}
		return bus, nil
	})
}

func bindUser(c *container.Container) {
	c.Bind(IDUserService).ToSingleton(func(c *container.Container) (any, error) {
		commands, err := container.Resolve[*command.Bus](c, IDCommandBus)
		if err != nil {
			return nil, err
		}
		queries, err := container.Resolve[*query.Bus](c, IDQueryBus)
		if err != nil {
			return nil, err
		}
		return user.NewValidatedService(user.NewService(commands, queries)), nil
	})
}

func bindHTTP(c *container.Container, cfg Config, log logger.Logger) {
	c.Bind(IDHTTPServer).ToSingleton(func(c *container.Container) (any, error) {
		service, err := container.Resolve[user.Service](c, IDUserService)
		if err != nil {
			return nil, err
		}

		srv := httpserver.NewHTTPServer(cfg.HTTP,
			middleware.NewRecoveryMW(log),
			middleware.NewTracingMW(),
			middleware.NewTimeoutMW(cfg.HTTP.RequestTimeout),
			middleware.NewMetaInjectMW(cfg.Service.Name, cfg.Service.Version),
			middleware.NewLoggerMW(log),
			middleware.NewErrorHandlerMW(cfg.HTTP.HideErrorDetails),
		)
		srv.RegisterRouter(httpapi.New(service).Register)
		return srv, nil
	})
}
