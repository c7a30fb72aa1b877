package pledge

// Pledge records that a user committed to one generated offset plan.
type Pledge struct {
	// ID is a ULID that uniquely identifies this pledge
	ID string `json:"id"`

	// SpeciesID and SpeciesName identify the species as it was when pledged
	SpeciesID   string `json:"species_id"`
	SpeciesName string `json:"species_name"`

	// AnnualSequestrationKg is the species rate at pledge time
	AnnualSequestrationKg float64 `json:"annual_sequestration_kg"`

	TreeCount     int `json:"tree_count"`
	DurationYears int `json:"duration_years"`

	// TargetKg is the CO2 amount the plan was generated for
	TargetKg float64 `json:"target_kg"`

	// TotalSequesteredKg is trees * rate * years
	TotalSequesteredKg float64 `json:"total_sequestered_kg"`

	// Note is an optional free-text remark (nullable)
	Note *string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the pledge was recorded
	CreatedAt int64 `json:"created_at"`
}

// Totals aggregates all stored pledges.
type Totals struct {
	Pledges            int     `json:"pledges"`
	Trees              int     `json:"trees"`
	TargetKg           float64 `json:"target_kg"`
	TotalSequesteredKg float64 `json:"total_sequestered_kg"`
}
