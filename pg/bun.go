// Package pg provides PostgreSQL connections through a pgx pool and the Bun ORM.
//
// Queries are traced with bunotel and, when enabled, logged through the
// application logger or printed by bundebug.
package pg

import (
	"context"

	"github.com/code19m/errx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/extra/bunotel"

	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/pg/hooks"
)

// NewBunDB opens a pgx pool sized by cfg and wraps it into a Bun database.
// The connection is verified with a ping.
func NewBunDB(ctx context.Context, cfg Config, log logger.Logger) (*bun.DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.dsn())
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"host": cfg.Host, "database": cfg.Database}))
	}
	poolCfg.MaxConns = cfg.PoolMaxConns
	poolCfg.MinConns = cfg.PoolMinConns
	poolCfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.PoolMaxConnLifetime

	// pgxpool dials lazily, the ping below is the first round trip
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, errx.Wrap(err)
	}

	bunDB := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	applyHooks(bunDB, cfg, log)

	if err = bunDB.PingContext(ctx); err != nil {
		_ = bunDB.Close()
		return nil, errx.Wrap(err, errx.WithDetails(errx.D{"host": cfg.Host, "database": cfg.Database}))
	}

	return bunDB, nil
}

// applyHooks adds the query hooks:
//   - the logging hook, active when cfg.Debug is set
//   - bundebug, printing every query to stdout when cfg.PrintQueries is set
//   - bunotel, always on
func applyHooks(db *bun.DB, cfg Config, log logger.Logger) {
	db.AddQueryHook(hooks.NewDebugHook(
		log,
		hooks.WithEnabled(cfg.Debug),
		hooks.WithSlowQueryThreshold(cfg.SlowQueryThreshold),
	))

	if cfg.PrintQueries {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.Database)))
}
