package domain

import "fmt"

const (
	MinDaysBack     = 1
	MaxDaysBack     = 30
	DefaultDaysBack = 14
)

// ParameterSet holds the user selections for one run.
type ParameterSet struct {
	DaysBack     int
	ShowFunding  bool
	ShowGlobal   bool
	ShowNational bool
}

// DefaultParameterSet looks back two weeks and shows every category.
func DefaultParameterSet() ParameterSet {
	return ParameterSet{
		DaysBack:     DefaultDaysBack,
		ShowFunding:  true,
		ShowGlobal:   true,
		ShowNational: true,
	}
}

// Validate checks the recency window bounds.
func (p ParameterSet) Validate() error {
	if p.DaysBack < MinDaysBack || p.DaysBack > MaxDaysBack {
		return fmt.Errorf("daysBack %d outside [%d,%d]: %w", p.DaysBack, MinDaysBack, MaxDaysBack, ErrInvalidParameters)
	}
	return nil
}

// Shows reports whether articles of class c are visible.
func (p ParameterSet) Shows(c Classification) bool {
	switch c {
	case Funding:
		return p.ShowFunding
	case Global:
		return p.ShowGlobal
	case National:
		return p.ShowNational
	default:
		return false
	}
}
