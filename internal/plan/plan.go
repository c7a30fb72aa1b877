// Package plan generates ranked tree-planting plans that offset a target
// amount of CO2.
//
// Generation is a pure function of (target, catalog, bounds): it reads the
// immutable catalog, allocates only local slices, and may be called
// concurrently without coordination.
package plan

import (
	"math"
	"sort"

	"github.com/hpungsan/sapling/internal/species"
)

// OffsetPlan is one (species, tree count, duration) recommendation.
// All numeric values are exact; callers own rounding for display.
type OffsetPlan struct {
	SpeciesID             string  `json:"species_id"`
	SpeciesName           string  `json:"species_name"`
	AnnualSequestrationKg float64 `json:"annual_sequestration_kg"`
	TreeCount             int     `json:"tree_count"`
	DurationYears         int     `json:"duration_years"`
	TotalSequesteredKg    float64 `json:"total_sequestered_kg"`
	CoverageRatio         float64 `json:"coverage_ratio"`
}

// Key identifies a plan for deduplication.
type Key struct {
	SpeciesID     string
	TreeCount     int
	DurationYears int
}

// Key returns the plan's (species, trees, years) triple.
func (p OffsetPlan) Key() Key {
	return Key{SpeciesID: p.SpeciesID, TreeCount: p.TreeCount, DurationYears: p.DurationYears}
}

// Generate returns the ranked plans for targetKg using DefaultBounds.
// A non-positive (or non-finite) target yields an empty, non-nil slice.
func Generate(targetKg float64, cat *species.Catalog) []OffsetPlan {
	return GenerateWithBounds(targetKg, cat, DefaultBounds())
}

// GenerateWithBounds is Generate with caller-supplied bounds.
// Invalid bounds yield an empty slice.
func GenerateWithBounds(targetKg float64, cat *species.Catalog, b Bounds) []OffsetPlan {
	return Rank(Enumerate(targetKg, cat, b), b.ResultCap)
}

// Enumerate produces every feasible candidate, species by species in catalog
// order and duration ascending. The sentinel species is never considered.
//
// For each duration d the tree count is ceil(target / (rate*d)); a candidate
// is kept only if that count is within [1, MaxTrees] and its coverage ratio
// is at least CoverageThreshold.
func Enumerate(targetKg float64, cat *species.Catalog, b Bounds) []OffsetPlan {
	out := []OffsetPlan{}
	if cat == nil || !b.Valid() {
		return out
	}
	// !(x > 0) also rejects NaN
	if !(targetKg > 0) || math.IsInf(targetKg, 1) {
		return out
	}

	for _, sp := range cat.Planning() {
		rate := sp.AnnualSequestrationKg
		for d := 1; d <= b.MaxYears; d++ {
			required := math.Ceil(targetKg / (rate * float64(d)))
			if required < 1 || required > float64(b.MaxTrees) {
				continue
			}
			trees := int(required)
			total := float64(trees) * rate * float64(d)
			ratio := total / targetKg
			if ratio < b.CoverageThreshold {
				continue
			}
			out = append(out, OffsetPlan{
				SpeciesID:             sp.ID,
				SpeciesName:           sp.DisplayName,
				AnnualSequestrationKg: rate,
				TreeCount:             trees,
				DurationYears:         d,
				TotalSequesteredKg:    total,
				CoverageRatio:         ratio,
			})
		}
	}
	return out
}

// Rank orders candidates by tree count then duration (stable, so ties keep
// enumeration order), drops exact repeats of the (species, trees, years)
// triple, and keeps at most limit plans. The input is not modified.
//
// Plans for the same species at adjacent durations are not collapsed.
func Rank(candidates []OffsetPlan, limit int) []OffsetPlan {
	out := []OffsetPlan{}
	if limit <= 0 || len(candidates) == 0 {
		return out
	}

	sorted := make([]OffsetPlan, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TreeCount != sorted[j].TreeCount {
			return sorted[i].TreeCount < sorted[j].TreeCount
		}
		return sorted[i].DurationYears < sorted[j].DurationYears
	})

	seen := make(map[Key]bool, len(sorted))
	for _, p := range sorted {
		k := p.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}
