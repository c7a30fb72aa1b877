package ops

import (
	"github.com/hpungsan/sapling/internal/species"
)

// SpeciesInput contains parameters for the SpeciesList operation.
type SpeciesInput struct {
	IncludeSentinel bool
}

// SpeciesOutput contains the result of the SpeciesList operation.
type SpeciesOutput struct {
	Items []species.TreeSpecies `json:"items"`
	Count int                   `json:"count"`
}

// SpeciesList returns the catalog in catalog order.
// The sentinel average entry is only included on request.
func SpeciesList(cat *species.Catalog, input SpeciesInput) *SpeciesOutput {
	var items []species.TreeSpecies
	if input.IncludeSentinel {
		items = cat.All()
	} else {
		items = cat.Planning()
	}
	return &SpeciesOutput{Items: items, Count: len(items)}
}
