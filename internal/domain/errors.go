package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetchFailed           = errors.New("failed to fetch articles")
	ErrNoRelevantArticles    = errors.New("no fintech-related articles found")
	ErrInvalidParameters     = errors.New("invalid parameters")
	ErrInvalidClassification = errors.New("invalid classification")
	ErrAlreadyClassified     = errors.New("article already classified")
)

// SourceFetchError reports a feed endpoint that could not be fetched or parsed.
type SourceFetchError struct {
	Source string
	URL    string
	Err    error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("source %s (%s): %v", e.Source, e.URL, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// EntryNormalizationError reports a single feed item that was skipped.
type EntryNormalizationError struct {
	Source string
	Index  int
	Err    error
}

func (e *EntryNormalizationError) Error() string {
	return fmt.Sprintf("source %s entry #%d: %v", e.Source, e.Index, e.Err)
}

func (e *EntryNormalizationError) Unwrap() error {
	return e.Err
}
