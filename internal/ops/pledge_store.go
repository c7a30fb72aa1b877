package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/pledge"
	"github.com/hpungsan/sapling/internal/species"
)

// PledgeStoreInput contains parameters for the PledgeStore operation.
type PledgeStoreInput struct {
	TargetKg  float64 // required, > 0
	SpeciesID string  // required
	Trees     int     // required, >= 1
	Years     int     // required, >= 1
	Note      *string // optional
}

// PledgeStoreOutput contains the result of the PledgeStore operation.
type PledgeStoreOutput struct {
	ID   string          `json:"id"`
	Plan plan.OffsetPlan `json:"plan"`
}

// PledgeStore records a commitment to one of the plans generated for a target.
// The (species, trees, years) triple must be among the plans the current
// bounds produce for TargetKg.
func PledgeStore(ctx context.Context, database *sql.DB, cat *species.Catalog, cfg *config.Config, input PledgeStoreInput) (*PledgeStoreOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Validate required fields
	if !finite(input.TargetKg) || input.TargetKg <= 0 {
		return nil, errors.NewInvalidRequest("target_kg must be a positive number")
	}
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

	chosen, ok := findPlan(plan.GenerateWithBounds(input.TargetKg, cat, cfg.Bounds()), plan.Key{
		SpeciesID:     sp.ID,
		TreeCount:     input.Trees,
		DurationYears: input.Years,
	})
	if !ok {
		return nil, errors.NewInvalidRequest(fmt.Sprintf(
			"%d %s trees for %d years is not an offered plan for target_kg %g",
			input.Trees, sp.ID, input.Years, input.TargetKg))
	}

	// Normalize and size-check the note
	note := cleanOptionalString(input.Note)
	if note != nil {
		normalized := pledge.NormalizeNote(*note)
		if chars := pledge.CountChars(normalized); chars > cfg.NoteMaxChars {
			return nil, errors.NewNoteTooLarge(cfg.NoteMaxChars, chars)
		}
		note = &normalized
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	p := &pledge.Pledge{
		ID:                    id,
		SpeciesID:             chosen.SpeciesID,
		SpeciesName:           chosen.SpeciesName,
		AnnualSequestrationKg: chosen.AnnualSequestrationKg,
		TreeCount:             chosen.TreeCount,
		DurationYears:         chosen.DurationYears,
		TargetKg:              input.TargetKg,
		TotalSequesteredKg:    chosen.TotalSequesteredKg,
		Note:                  note,
		CreatedAt:             time.Now().Unix(),
	}

	if err := db.Insert(ctx, database, p); err != nil {
		return nil, err
	}

	return &PledgeStoreOutput{ID: id, Plan: chosen}, nil
}

// findPlan returns the plan with the given key, if offered.
func findPlan(plans []plan.OffsetPlan, key plan.Key) (plan.OffsetPlan, bool) {
	for _, p := range plans {
		if p.Key() == key {
			return p, true
		}
	}
	return plan.OffsetPlan{}, false
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
