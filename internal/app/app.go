package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"FintechNews/internal/classify"
	"FintechNews/internal/config"
	"FintechNews/internal/domain"
	"FintechNews/internal/export"
	"FintechNews/internal/handler"
	transport "FintechNews/internal/http"
	"FintechNews/internal/infrastructure/parser"
	"FintechNews/internal/logging"
	"FintechNews/internal/scanner"
	"FintechNews/internal/usecase"
)

// Application wires configs to use cases and transports.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	exporter *export.FileWriter
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	registry := scanner.NewRegistry()
	client := &http.Client{Timeout: cfg.Fetch.Timeout}
	registry.Register(parser.NewFeedScanner(client, cfg.Fetch.UserAgent))

	source := parser.NewStrategySource(registry, cfg.Sources, parser.SourceOptions{
		Fetch:    cfg.Fetch,
		Location: cfg.Location(),
		Logger:   baseLogger.With("component", "source"),
	})

	filter, classifier := classify.NewFromConfig(cfg.Keywords)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Filter:     filter,
		Classifier: classifier,
		Logger:     baseLogger.With("component", "pipeline"),
		Now:        func() time.Time { return time.Now().In(cfg.Location()) },
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		exporter: export.NewFileWriter(cfg.Export.Dir),
	}
}

// Run performs a single refresh, logs the visible sections and writes the CSV export.
// Fetch failures and invalid parameters come back as errors; an empty
// relevance result is a normal outcome.
func (a *Application) Run(ctx context.Context, params domain.ParameterSet) (domain.Outcome, error) {
	report, err := a.pipeline.Refresh(ctx, params)
	if err != nil {
		return report.Outcome, err
	}

	switch report.Outcome {
	case domain.OutcomeFetchFailed:
		return report.Outcome, fmt.Errorf("refresh: %w", report.Outcome.Err())
	case domain.OutcomeNoRelevantArticles:
		a.logger.Warn("no fintech-related articles found", "fetched", report.Diagnostics.Fetched)
		return report.Outcome, nil
	}

	a.logger.Info("found fintech articles",
		"total", report.Counts.Total,
		"funding", report.Counts.Funding,
		"global", report.Counts.Global,
		"national", report.Counts.National)

	for _, section := range report.Sections {
		if !section.Visible || len(section.Articles) == 0 {
			continue
		}
		a.logger.Info("section", "classification", section.Classification, "articles", len(section.Articles))
		for col, column := range section.Columns {
			for _, article := range column {
				a.logger.Info("article",
					"column", col,
					"source", article.Source,
					"published", article.PublishedAt.Format("2006-01-02"),
					"title", article.Title,
					"url", article.URL)
			}
		}
	}

	path, err := a.exporter.Write(report.Export)
	if err != nil {
		return report.Outcome, fmt.Errorf("write export: %w", err)
	}
	a.logger.Info("export written", "path", path, "records", len(report.Export.Records))

	return report.Outcome, nil
}

// Serve exposes the refresh over HTTP until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	newsHandler := handler.NewNewsHandler(a.pipeline, a.cfg.Defaults.Params())
	router := transport.NewRouter(newsHandler, a.logger.With("component", "http"), a.cfg.Server.RateLimit)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting http server", "addr", a.cfg.Server.Addr)
		errCh <- router.Start(a.cfg.Server.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return shutdown(router)
	}
}

func shutdown(router *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return router.Shutdown(ctx)
}
