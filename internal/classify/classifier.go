package classify

import (
	"FintechNews/internal/config"
	"FintechNews/internal/domain"
)

// Classifier assigns one label per article following domain.PriorityOrder.
type Classifier struct {
	groups map[domain.Classification]KeywordSet
}

// NewClassifier wires one keyword group per label. A nil group never matches;
// National is still returned as the fallback.
func NewClassifier(groups map[domain.Classification][]string) *Classifier {
	prepared := make(map[domain.Classification]KeywordSet, len(groups))
	for label, terms := range groups {
		prepared[label] = NewKeywordSet(terms)
	}
	return &Classifier{groups: prepared}
}

// NewFromConfig builds the relevance filter and the classifier from the keywords section.
func NewFromConfig(cfg config.KeywordsConfig) (*RelevanceFilter, *Classifier) {
	filter := NewRelevanceFilter(cfg.Fintech)
	classifier := NewClassifier(map[domain.Classification][]string{
		domain.Funding:  cfg.Funding,
		domain.Global:   cfg.Global,
		domain.National: cfg.National,
	})
	return filter, classifier
}

// Classify returns the first label in priority order whose group matches.
// Funding outranks Global; anything else is National.
func (c *Classifier) Classify(title, description string) domain.Classification {
	text := prepare(title, description)
	for _, label := range domain.PriorityOrder() {
		set, ok := c.groups[label]
		if !ok {
			continue
		}
		if set.Matches(text) {
			return label
		}
	}
	return domain.National
}
