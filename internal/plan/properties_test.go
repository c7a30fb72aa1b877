package plan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/sapling/internal/species"
)

var propertyTargets = []float64{0.01, 1, 5.5, 21.77, 42, 100, 250, 999.99, 1000, 2500, 7777.7, 20000, 35000}

func TestGenerate_Properties(t *testing.T) {
	cat := species.Default()

	for _, target := range propertyTargets {
		plans := Generate(target, cat)
		require.LessOrEqual(t, len(plans), ResultCap, "target %v", target)

		seen := make(map[Key]bool)
		for i, p := range plans {
			sp, ok := cat.Lookup(p.SpeciesID)
			require.True(t, ok, "unknown species %q", p.SpeciesID)
			require.False(t, sp.Sentinel)

			require.GreaterOrEqual(t, p.TreeCount, 1)
			require.LessOrEqual(t, p.TreeCount, MaxTrees)
			require.GreaterOrEqual(t, p.DurationYears, 1)
			require.LessOrEqual(t, p.DurationYears, MaxYears)
			require.GreaterOrEqual(t, p.TotalSequesteredKg, CoverageThreshold*target)

			// Exact recomputation from catalog data
			require.Equal(t, float64(p.TreeCount)*sp.AnnualSequestrationKg*float64(p.DurationYears), p.TotalSequesteredKg)
			require.Equal(t, p.TotalSequesteredKg/target, p.CoverageRatio)
			require.Equal(t, sp.AnnualSequestrationKg, p.AnnualSequestrationKg)
			require.Equal(t, sp.DisplayName, p.SpeciesName)

			require.False(t, seen[p.Key()], "duplicate triple %+v", p.Key())
			seen[p.Key()] = true

			if i > 0 {
				prev := plans[i-1]
				ordered := prev.TreeCount < p.TreeCount ||
					(prev.TreeCount == p.TreeCount && prev.DurationYears <= p.DurationYears)
				require.True(t, ordered, "target %v: %+v before %+v", target, prev, p)
			}
		}
	}
}

func TestGenerate_TreeCountIsCeiling(t *testing.T) {
	cat := species.Default()
	for _, target := range propertyTargets {
		for _, p := range Enumerate(target, cat, DefaultBounds()) {
			perTree := p.AnnualSequestrationKg * float64(p.DurationYears)
			// One tree fewer must fall short of the target
			require.Less(t, float64(p.TreeCount-1)*perTree, target, "%+v", p)
		}
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	cat := species.Default()
	for _, target := range propertyTargets {
		require.Equal(t, Generate(target, cat), Generate(target, cat))
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	cat := species.Default()
	want := Generate(1234.5, cat)

	var wg sync.WaitGroup
	results := make([][]OffsetPlan, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Generate(1234.5, cat)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, want, got)
	}
}
