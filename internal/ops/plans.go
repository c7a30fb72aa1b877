package ops

import (
	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/species"
)

// PlansInput contains parameters for the Plans operation.
type PlansInput struct {
	TargetKg float64 // kg of CO2 to offset
}

// PlansOutput contains the result of the Plans operation.
type PlansOutput struct {
	TargetKg float64           `json:"target_kg"`
	Plans    []plan.OffsetPlan `json:"plans"`
	Count    int               `json:"count"`
	Bounds   plan.Bounds       `json:"bounds"`
}

// Plans generates ranked offset plans for a CO2 target.
// A non-positive target is not an error: it returns an empty list.
func Plans(cat *species.Catalog, cfg *config.Config, input PlansInput) (*PlansOutput, error) {
	if !finite(input.TargetKg) {
		return nil, errors.NewInvalidRequest("target_kg must be a finite number")
	}

	bounds := cfg.Bounds()
	plans := plan.GenerateWithBounds(input.TargetKg, cat, bounds)

	return &PlansOutput{
		TargetKg: input.TargetKg,
		Plans:    plans,
		Count:    len(plans),
		Bounds:   bounds,
	}, nil
}
