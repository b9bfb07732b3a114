// Command userdemo runs the user service over HTTP, or walks through the user
// lifecycle once with -mode=scenario.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/cqrskit/cfgloader"
	"github.com/rise-and-shine/cqrskit/internal/app"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	mode := flag.String("mode", "serve", "serve | scenario")
	configDir := flag.String("config", "./config", "directory holding <ENVIRONMENT>.yaml")
	flag.Parse()

	cfg := cfgloader.MustLoad[app.Config](cfgloader.WithDir(*configDir))

	log, err := logger.New(cfg.Logger)
	if err != nil {
		slog.Error("[userdemo]: " + err.Error())
		os.Exit(1)
	}

	if err = run(*mode, cfg, log); err != nil {
		log.Errorx(err)
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(mode string, cfg app.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracing.InitGlobalTracer(ctx, cfg.Tracing, cfg.Service.Name, cfg.Service.Version)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdownTracer(shutdownCtx); shutdownErr != nil {
			log.Warnx(shutdownErr)
		}
	}()

	a := app.New(ctx, cfg, log)
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			log.Warnx(closeErr)
		}
	}()

	switch mode {
	case "serve":
		return a.Run(ctx)
	case "scenario":
		return a.RunScenario(ctx)
	default:
		return errx.New("unknown mode", errx.WithType(errx.T_Validation), errx.WithDetails(errx.D{"mode": mode}))
	}
}
