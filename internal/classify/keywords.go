package classify

import (
	"strings"

	"golang.org/x/text/cases"
)

// KeywordSet matches case-folded substrings against prepared text.
type KeywordSet struct {
	terms []string
}

// NewKeywordSet folds and trims terms; blanks are dropped.
func NewKeywordSet(terms []string) KeywordSet {
	folded := make([]string, 0, len(terms))
	for _, term := range terms {
		term = fold(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		folded = append(folded, term)
	}
	return KeywordSet{terms: folded}
}

// Terms returns the folded vocabulary.
func (k KeywordSet) Terms() []string {
	return append([]string(nil), k.terms...)
}

// Len is the number of usable terms.
func (k KeywordSet) Len() int {
	return len(k.terms)
}

// Matches reports whether any term occurs in text. text must come from prepare.
func (k KeywordSet) Matches(text string) bool {
	for _, term := range k.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// prepare joins title and description the same way for filtering and classification.
func prepare(title, description string) string {
	return fold(title + " " + description)
}

// Caser values keep state, so one is built per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
