package ports

import (
	"context"

	"FintechNews/internal/domain"
)

// ArticleSource pulls recent entries from every configured feed.
type ArticleSource interface {
	FetchRecent(ctx context.Context, daysBack int) (domain.FetchResult, error)
}

// RelevanceFilter decides whether an article is in-domain.
type RelevanceFilter interface {
	IsFintechRelated(title, description string) bool
}

// Classifier assigns exactly one label to an in-domain article.
type Classifier interface {
	Classify(title, description string) domain.Classification
}
