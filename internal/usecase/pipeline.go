package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FintechNews/internal/aggregate"
	"FintechNews/internal/domain"
	"FintechNews/internal/ports"
)

// PipelineDeps wires all driven adapters into the refresh pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Filter     ports.RelevanceFilter
	Classifier ports.Classifier
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline runs Fetcher → Filter → Classifier → Aggregation.
type Pipeline struct {
	source     ports.ArticleSource
	filter     ports.RelevanceFilter
	classifier ports.Classifier
	logger     *slog.Logger
	now        func() time.Time
}

// Diagnostics summarises what happened while fetching.
type Diagnostics struct {
	Sources        int
	FailedSources  []string
	SkippedEntries int
	Fetched        int
	Relevant       int
}

// Report is the complete result of one refresh.
type Report struct {
	Outcome     domain.Outcome
	Params      domain.ParameterSet
	GeneratedAt time.Time
	Diagnostics Diagnostics
	// Snapshot is only populated on success.
	aggregate.Snapshot
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		source:     deps.Source,
		filter:     deps.Filter,
		classifier: deps.Classifier,
		logger:     deps.Logger,
		now:        now,
	}
}

// Refresh recomputes everything from scratch for params. Fetch failures and
// empty relevance results are reported through Report.Outcome, not as errors.
func (p *Pipeline) Refresh(ctx context.Context, params domain.ParameterSet) (Report, error) {
	if err := params.Validate(); err != nil {
		return Report{}, err
	}
	if p.source == nil || p.filter == nil || p.classifier == nil {
		return Report{}, fmt.Errorf("pipeline is not fully configured")
	}

	report := Report{Params: params, GeneratedAt: p.now()}

	fetched, err := p.source.FetchRecent(ctx, params.DaysBack)
	if err != nil {
		return Report{}, fmt.Errorf("fetch recent: %w", err)
	}
	report.Diagnostics = diagnose(fetched)

	if len(fetched.Articles) == 0 {
		report.Outcome = domain.OutcomeFetchFailed
		p.log(ctx, slog.LevelError, "refresh produced no articles",
			"sources", fetched.Sources, "failed_sources", len(fetched.Failures))
		return report, nil
	}

	classified, err := p.classify(fetched.Articles)
	if err != nil {
		return Report{}, err
	}
	report.Diagnostics.Relevant = len(classified)

	if len(classified) == 0 {
		report.Outcome = domain.OutcomeNoRelevantArticles
		p.log(ctx, slog.LevelWarn, "no fintech-related articles found", "fetched", len(fetched.Articles))
		return report, nil
	}

	snapshot, err := aggregate.Build(classified, params, report.GeneratedAt)
	if err != nil {
		return Report{}, fmt.Errorf("aggregate: %w", err)
	}
	report.Outcome = domain.OutcomeSuccess
	report.Snapshot = snapshot

	p.log(ctx, slog.LevelInfo, "refresh done",
		"fetched", len(fetched.Articles),
		"total", snapshot.Counts.Total,
		"funding", snapshot.Counts.Funding,
		"global", snapshot.Counts.Global,
		"national", snapshot.Counts.National,
		"failed_sources", len(fetched.Failures),
		"skipped_entries", len(fetched.Skipped))
	return report, nil
}

func (p *Pipeline) classify(articles []domain.Article) ([]domain.Article, error) {
	out := make([]domain.Article, 0, len(articles))
	for _, article := range articles {
		if !p.filter.IsFintechRelated(article.Title, article.Description) {
			continue
		}
		labelled, err := article.WithClassification(p.classifier.Classify(article.Title, article.Description))
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", article.Title, err)
		}
		out = append(out, labelled)
	}
	return out, nil
}

func diagnose(fetched domain.FetchResult) Diagnostics {
	d := Diagnostics{
		Sources:        fetched.Sources,
		SkippedEntries: len(fetched.Skipped),
		Fetched:        len(fetched.Articles),
	}
	for _, f := range fetched.Failures {
		d.FailedSources = append(d.FailedSources, f.Source)
	}
	return d
}

func (p *Pipeline) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if p.logger != nil {
		p.logger.Log(ctx, level, msg, args...)
	}
}
