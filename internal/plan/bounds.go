package plan

import "math"

// Search and acceptance bounds for plan generation.
const (
	// CoverageThreshold is the minimum totalSequestered/target ratio a plan
	// must reach. Tree counts are still rounded up; the two rules are kept
	// independent on purpose.
	CoverageThreshold = 0.9

	// MaxTrees is the largest tree count a plan may ask for.
	MaxTrees = 100

	// MaxYears is the planning horizon: durations 1..MaxYears are searched.
	MaxYears = 10

	// ResultCap is the maximum number of plans returned.
	ResultCap = 12
)

// Bounds groups the tunable limits so they can be overridden without
// touching the algorithm.
type Bounds struct {
	CoverageThreshold float64 `json:"coverage_threshold"`
	MaxTrees          int     `json:"max_trees"`
	MaxYears          int     `json:"max_years"`
	ResultCap         int     `json:"result_cap"`
}

// DefaultBounds returns the package constants as a Bounds value.
func DefaultBounds() Bounds {
	return Bounds{
		CoverageThreshold: CoverageThreshold,
		MaxTrees:          MaxTrees,
		MaxYears:          MaxYears,
		ResultCap:         ResultCap,
	}
}

// Valid reports whether the bounds can produce any plan at all.
func (b Bounds) Valid() bool {
	if math.IsNaN(b.CoverageThreshold) || math.IsInf(b.CoverageThreshold, 0) || b.CoverageThreshold < 0 {
		return false
	}
	return b.MaxTrees >= 1 && b.MaxYears >= 1 && b.ResultCap >= 1
}
