package aggregate

import (
	"fmt"
	"time"

	"FintechNews/internal/domain"
	"FintechNews/internal/export"
)

// ColumnCount is the width of the round-robin layout.
const ColumnCount = 2

// Counts are computed over every classified article, ignoring visibility toggles.
type Counts struct {
	Total    int
	Funding  int
	Global   int
	National int
}

// Of returns the count for one label.
func (c Counts) Of(label domain.Classification) int {
	switch label {
	case domain.Funding:
		return c.Funding
	case domain.Global:
		return c.Global
	case domain.National:
		return c.National
	default:
		return 0
	}
}

// Section is one category group in display order.
type Section struct {
	Classification domain.Classification
	Visible        bool
	Articles       []domain.Article
	Columns        [ColumnCount][]domain.Article
}

// Snapshot is the structured result handed to the presentation shell.
type Snapshot struct {
	Counts   Counts
	Sections []Section
	Export   export.Set
}

// Visible flattens the visible sections in display order.
func (s Snapshot) Visible() []domain.Article {
	var out []domain.Article
	for _, section := range s.Sections {
		out = append(out, section.Articles...)
	}
	return out
}

// Section returns the group for label.
func (s Snapshot) Section(label domain.Classification) (Section, bool) {
	for _, section := range s.Sections {
		if section.Classification == label {
			return section, true
		}
	}
	return Section{}, false
}

// Build groups classified articles, counts them and prepares the export.
// Every article must already carry a valid classification.
func Build(articles []domain.Article, params domain.ParameterSet, now time.Time) (Snapshot, error) {
	groups := make(map[domain.Classification][]domain.Article, len(domain.DisplayOrder()))
	var counts Counts

	for i, a := range articles {
		switch a.Classification {
		case domain.Funding:
			counts.Funding++
		case domain.Global:
			counts.Global++
		case domain.National:
			counts.National++
		default:
			return Snapshot{}, fmt.Errorf("article %d (%q): %w", i, a.Title, domain.ErrInvalidClassification)
		}
		counts.Total++
		groups[a.Classification] = append(groups[a.Classification], a)
	}

	sections := make([]Section, 0, len(domain.DisplayOrder()))
	for _, label := range domain.DisplayOrder() {
		section := Section{Classification: label, Visible: params.Shows(label)}
		if section.Visible {
			section.Articles = groups[label]
			section.Columns = Columns(section.Articles)
		}
		sections = append(sections, section)
	}

	return Snapshot{
		Counts:   counts,
		Sections: sections,
		Export:   export.NewSet(articles, now),
	}, nil
}

// Columns deals items into ColumnCount columns: item i lands in column i mod ColumnCount.
func Columns(items []domain.Article) [ColumnCount][]domain.Article {
	var cols [ColumnCount][]domain.Article
	for i, item := range items {
		idx := i % ColumnCount
		cols[idx] = append(cols[idx], item)
	}
	return cols
}
