// Package species holds the immutable catalog of tree species used for
// offset planning.
package species

// TreeSpecies describes one tree species and its sequestration attributes.
type TreeSpecies struct {
	// ID is the stable lookup key (lowercase, no surrounding whitespace)
	ID string `json:"id" yaml:"id"`

	// DisplayName is the human-readable name
	DisplayName string `json:"display_name" yaml:"display_name"`

	// AnnualSequestrationKg is kg of CO2 one tree absorbs per year
	AnnualSequestrationKg float64 `json:"annual_sequestration_kg" yaml:"annual_sequestration_kg"`

	// TypicalLifetimeYears is the expected lifetime of one tree
	TypicalLifetimeYears int `json:"typical_lifetime_years" yaml:"typical_lifetime_years"`

	// Description is a short Markdown blurb shown next to plans
	Description string `json:"description" yaml:"description"`

	// Sentinel marks the generic "average tree" entry. It is used for rough
	// estimates and never appears in generated plans.
	Sentinel bool `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
}
