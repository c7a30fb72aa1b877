package plan

import (
	"math"

	"github.com/hpungsan/sapling/internal/species"
)

// KgPerTonne converts tonnes to kilograms.
const KgPerTonne = 1000.0

// Impact is the outcome of planting a fixed number of trees for a fixed
// number of years.
type Impact struct {
	SpeciesID             string  `json:"species_id"`
	SpeciesName           string  `json:"species_name"`
	AnnualSequestrationKg float64 `json:"annual_sequestration_kg"`
	TreeCount             int     `json:"tree_count"`
	Years                 int     `json:"years"`

	// CO2AbsorbedKg is rate * trees * years
	CO2AbsorbedKg float64 `json:"co2_absorbed_kg"`

	// TreesPerTonne is how many trees offset one tonne within a single year
	TreesPerTonne int `json:"trees_per_tonne"`

	// YearsPerTonne is how many years these trees need to offset one tonne
	YearsPerTonne int `json:"years_per_tonne"`
}

// ComputeImpact evaluates a fixed planting. Callers validate that trees and
// years are >= 1.
func ComputeImpact(sp species.TreeSpecies, trees, years int) Impact {
	rate := sp.AnnualSequestrationKg
	return Impact{
		SpeciesID:             sp.ID,
		SpeciesName:           sp.DisplayName,
		AnnualSequestrationKg: rate,
		TreeCount:             trees,
		Years:                 years,
		CO2AbsorbedKg:         rate * float64(trees) * float64(years),
		TreesPerTonne:         ceilCount(KgPerTonne / rate),
		YearsPerTonne:         ceilCount(KgPerTonne / (rate * float64(trees))),
	}
}

// ceilCount rounds x up to an int, saturating at math.MaxInt.
// Tiny custom rates push the quotient past the int range.
func ceilCount(x float64) int {
	if x >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(math.Ceil(x))
}
