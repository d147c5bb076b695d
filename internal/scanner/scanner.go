package scanner

import (
	"context"
	"fmt"
	"time"

	"FintechNews/internal/domain"
)

// Request carries all parameters required to scan one feed endpoint.
type Request struct {
	SourceName string
	URL        string
	Limit      int
	Now        time.Time
	Cutoff     time.Time
	Location   *time.Location
}

// Batch is what a single source produced: kept articles plus skipped entries.
type Batch struct {
	Articles []domain.Article
	Skipped  []*domain.EntryNormalizationError
}

// Scanner captures a single strategy implementation (RSS, Atom, etc.).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) (Batch, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}
