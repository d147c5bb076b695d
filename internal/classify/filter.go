package classify

// RelevanceFilter decides whether an article is fintech-related.
type RelevanceFilter struct {
	keywords KeywordSet
}

// NewRelevanceFilter builds a filter over the configured vocabulary.
func NewRelevanceFilter(keywords []string) *RelevanceFilter {
	return &RelevanceFilter{keywords: NewKeywordSet(keywords)}
}

// IsFintechRelated matches any keyword as a substring of the folded title and description.
func (f *RelevanceFilter) IsFintechRelated(title, description string) bool {
	return f.keywords.Matches(prepare(title, description))
}
