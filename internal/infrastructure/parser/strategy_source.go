package parser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"FintechNews/internal/config"
	"FintechNews/internal/domain"
	"FintechNews/internal/ports"
	"FintechNews/internal/scanner"
)

// StrategySource implements ArticleSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sources  []config.SourceConfig
	fetch    config.FetchConfig
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// SourceOptions carries the per-run knobs of StrategySource.
type SourceOptions struct {
	Fetch    config.FetchConfig
	Location *time.Location
	Logger   *slog.Logger
	Now      func() time.Time
}

// NewStrategySource wires scanner registry with config-defined sources.
func NewStrategySource(reg *scanner.Registry, sources []config.SourceConfig, opts SourceOptions) *StrategySource {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &StrategySource{
		registry: reg,
		sources:  sources,
		fetch:    opts.Fetch,
		location: loc,
		logger:   opts.Logger,
		now:      now,
	}
}

type sourceOutcome struct {
	batch   scanner.Batch
	failure *domain.SourceFetchError
}

// FetchRecent scans every source independently. A failing source is recorded
// and skipped; results keep configuration order.
func (s *StrategySource) FetchRecent(ctx context.Context, daysBack int) (domain.FetchResult, error) {
	if s.registry == nil {
		return domain.FetchResult{}, fmt.Errorf("scanner registry is not configured")
	}

	now := s.now().In(s.location)
	cutoff := now.AddDate(0, 0, -daysBack)
	s.debug("fetch recent", "sources", len(s.sources), "days_back", daysBack, "cutoff", cutoff.Format(time.RFC3339))

	outcomes := make([]sourceOutcome, len(s.sources))

	var g errgroup.Group
	if s.fetch.Concurrency > 0 {
		g.SetLimit(s.fetch.Concurrency)
	}
	for i, src := range s.sources {
		g.Go(func() error {
			outcomes[i] = s.scanSource(ctx, src, now, cutoff)
			return nil
		})
	}
	_ = g.Wait()

	result := domain.FetchResult{Sources: len(s.sources)}
	for i, out := range outcomes {
		if out.failure != nil {
			s.warn("source skipped", "source", s.sources[i].Name, "error", out.failure.Err)
			result.Failures = append(result.Failures, out.failure)
			continue
		}
		for _, skipped := range out.batch.Skipped {
			s.warn("entry skipped", "source", skipped.Source, "index", skipped.Index, "error", skipped.Err)
		}
		result.Skipped = append(result.Skipped, out.batch.Skipped...)
		s.debug("source produced articles", "source", s.sources[i].Name, "count", len(out.batch.Articles))
		result.Articles = append(result.Articles, out.batch.Articles...)
	}

	s.debug("strategy source done", "total_articles", len(result.Articles), "failed_sources", len(result.Failures))
	return result, nil
}

func (s *StrategySource) scanSource(ctx context.Context, src config.SourceConfig, now, cutoff time.Time) sourceOutcome {
	fail := func(err error) sourceOutcome {
		return sourceOutcome{failure: &domain.SourceFetchError{Source: src.Name, URL: src.URL, Err: err}}
	}

	name := src.Scanner
	if name == "" {
		name = feedScannerName
	}
	strategy, err := s.registry.Resolve(name)
	if err != nil {
		return fail(err)
	}

	if s.fetch.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetch.Timeout)
		defer cancel()
	}

	batch, err := strategy.Scan(ctx, scanner.Request{
		SourceName: src.Name,
		URL:        src.URL,
		Limit:      s.fetch.MaxEntries,
		Now:        now,
		Cutoff:     cutoff,
		Location:   s.location,
	})
	if err != nil {
		return fail(err)
	}

	for i := range batch.Articles {
		if batch.Articles[i].Source == "" {
			batch.Articles[i].Source = src.Name
		}
	}
	return sourceOutcome{batch: batch}
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
