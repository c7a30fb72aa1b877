package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/plan"
	"github.com/hpungsan/sapling/internal/pledge"
)

// PledgeSummaryOutput contains the result of the PledgeSummary operation.
type PledgeSummaryOutput struct {
	pledge.Totals

	// TotalSequesteredTonnes is TotalSequesteredKg in tonnes
	TotalSequesteredTonnes float64 `json:"total_sequestered_tonnes"`
}

// PledgeSummary totals every stored pledge.
func PledgeSummary(ctx context.Context, database *sql.DB) (*PledgeSummaryOutput, error) {
	totals, err := db.Totals(ctx, database)
	if err != nil {
		return nil, err
	}
	return &PledgeSummaryOutput{
		Totals:                 totals,
		TotalSequesteredTonnes: totals.TotalSequesteredKg / plan.KgPerTonne,
	}, nil
}
