package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"FintechNews/internal/app"
	"FintechNews/internal/config"
	"FintechNews/internal/domain"
	"FintechNews/internal/logging"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	defaults := cfg.Defaults.Params()

	serve := flag.Bool("serve", false, "run the HTTP server instead of a single refresh")
	daysBack := flag.Int("days", defaults.DaysBack, "number of days to look back (1-30)")
	showFunding := flag.Bool("funding", defaults.ShowFunding, "show funding news")
	showGlobal := flag.Bool("global", defaults.ShowGlobal, "show global fintech news")
	showNational := flag.Bool("national", defaults.ShowNational, "show national fintech news")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger)

	if *serve {
		if err := application.Serve(ctx); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	params := domain.ParameterSet{
		DaysBack:     *daysBack,
		ShowFunding:  *showFunding,
		ShowGlobal:   *showGlobal,
		ShowNational: *showNational,
	}

	outcome, err := application.Run(ctx, params)
	if err != nil {
		logger.Error("refresh failed", "error", err)
		os.Exit(1)
	}
	logger.Info("refresh finished", "outcome", outcome.String())
}
