package report

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryColumns are the premium category columns of the Allocation
// Summary report, in output order.
var CategoryColumns = []string{
	"Casualty",
	"Fire & Allied",
	"Health",
	"Inland Marine",
	"Life",
	"Motor Vehicle",
	"Other Premiums",
}

// CategoryStrategy distributes a jurisdiction's premium total across
// the category columns. The source data carries no per-category
// premium breakdown, so attribution is a structural placeholder until
// real category data exists; the rule is pluggable rather than baked
// into the aggregation.
type CategoryStrategy interface {
	// Allocate returns one fixed-2-decimal cell per category column.
	Allocate(total decimal.Decimal) []string
}

// SingleBucket mirrors the whole jurisdiction total into one designated
// category and zero-fills the rest. The default designated bucket is
// Life, matching the filed report family this system reproduces.
type SingleBucket struct {
	column string
}

// NewSingleBucket creates a single-bucket strategy for the named
// category column.
func NewSingleBucket(column string) (SingleBucket, error) {
	for _, c := range CategoryColumns {
		if c == column {
			return SingleBucket{column: column}, nil
		}
	}
	return SingleBucket{}, fmt.Errorf("unknown category column: %s", column)
}

// Allocate mirrors the total into the designated column.
func (s SingleBucket) Allocate(total decimal.Decimal) []string {
	cells := make([]string, len(CategoryColumns))
	for i, c := range CategoryColumns {
		if c == s.column {
			cells[i] = total.StringFixed(2)
		} else {
			cells[i] = "0.00"
		}
	}
	return cells
}

// SplitCasualtyFire splits the total 60/40 into Casualty and
// Fire & Allied, the rule used by the parallel county report family.
type SplitCasualtyFire struct{}

// Allocate splits the total 60/40.
func (SplitCasualtyFire) Allocate(total decimal.Decimal) []string {
	cells := make([]string, len(CategoryColumns))
	for i, c := range CategoryColumns {
		switch c {
		case "Casualty":
			cells[i] = total.Mul(decimal.NewFromFloat(0.6)).StringFixed(2)
		case "Fire & Allied":
			cells[i] = total.Mul(decimal.NewFromFloat(0.4)).StringFixed(2)
		default:
			cells[i] = "0.00"
		}
	}
	return cells
}

// StrategyFromName resolves a configured strategy name.
func StrategyFromName(name string) (CategoryStrategy, error) {
	switch name {
	case "", "life":
		return NewSingleBucket("Life")
	case "split":
		return SplitCasualtyFire{}, nil
	default:
		return nil, fmt.Errorf("unknown category strategy: %s (supported: life, split)", name)
	}
}
