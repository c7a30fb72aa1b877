package ops

import (
	"strings"

	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/species"
)

// ImpactInput contains parameters for the Impact operation.
type ImpactInput struct {
	SpeciesID string // required
	Trees     int    // >= 1
	Years     int    // >= 1
}

// Impact computes how much CO2 a fixed planting absorbs.
// The sentinel species is allowed here since no plan is generated.
func Impact(cat *species.Catalog, input ImpactInput) (*plan.Impact, error) {
	if strings.TrimSpace(input.SpeciesID) == "" {
		return nil, errors.NewInvalidRequest("species is required")
	}
	if input.Trees < 1 {
		return nil, errors.NewInvalidRequest("trees must be at least 1")
	}
	if input.Years < 1 {
		return nil, errors.NewInvalidRequest("years must be at least 1")
	}

	sp, err := cat.Find(input.SpeciesID)
	if err != nil {
		return nil, err
	}

	impact := plan.ComputeImpact(sp, input.Trees, input.Years)
	return &impact, nil
}
