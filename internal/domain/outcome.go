package domain

// Outcome is the terminal signal of one refresh run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeNoRelevantArticles
	OutcomeFetchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoRelevantArticles:
		return "no_relevant_articles"
	case OutcomeFetchFailed:
		return "fetch_failed"
	default:
		return "unknown"
	}
}

// Err maps non-success outcomes to their sentinel errors.
func (o Outcome) Err() error {
	switch o {
	case OutcomeNoRelevantArticles:
		return ErrNoRelevantArticles
	case OutcomeFetchFailed:
		return ErrFetchFailed
	default:
		return nil
	}
}
