package domain

import (
	"fmt"
	"time"
)

// Classification is the single coarse category attached to an in-domain article.
type Classification string

const (
	Funding  Classification = "Funding"
	Global   Classification = "Global"
	National Classification = "National"
)

// PriorityOrder is the classification tie-break: the first matching group wins,
// National is the fallback.
func PriorityOrder() []Classification {
	return []Classification{Funding, Global, National}
}

// DisplayOrder is the order sections are presented in.
func DisplayOrder() []Classification {
	return []Classification{Global, National, Funding}
}

// Valid reports whether c is one of the known labels.
func (c Classification) Valid() bool {
	switch c {
	case Funding, Global, National:
		return true
	default:
		return false
	}
}

// Article is a normalized feed entry.
type Article struct {
	Title       string
	Description string
	URL         string
	// PublishedAt is a calendar date (midnight in the configured timezone).
	PublishedAt    time.Time
	Source         string
	Classification Classification
}

// Classified reports whether a label has been attached.
func (a Article) Classified() bool {
	return a.Classification != ""
}

// WithClassification returns a copy of the article carrying c.
// A label can be attached once.
func (a Article) WithClassification(c Classification) (Article, error) {
	if !c.Valid() {
		return a, fmt.Errorf("classification %q: %w", c, ErrInvalidClassification)
	}
	if a.Classified() {
		return a, fmt.Errorf("article %q already %s: %w", a.Title, a.Classification, ErrAlreadyClassified)
	}
	a.Classification = c
	return a, nil
}

// FetchResult is the outcome of one fetch over all configured sources.
type FetchResult struct {
	Articles []Article
	Sources  int
	Failures []*SourceFetchError
	Skipped  []*EntryNormalizationError
}
