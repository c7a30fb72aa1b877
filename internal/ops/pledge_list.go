package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/pledge"
)

// PledgeListInput contains parameters for the PledgeList operation.
type PledgeListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// PledgeListOutput contains the result of the PledgeList operation.
type PledgeListOutput struct {
	Items      []pledge.Pledge `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// PledgeList retrieves pledges newest first with pagination.
func PledgeList(ctx context.Context, database *sql.DB, input PledgeListInput) (*PledgeListOutput, error) {
	limit := clampLimit(input.Limit)
	offset := max(input.Offset, 0)

	items, total, err := db.List(ctx, database, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if items == nil {
		items = []pledge.Pledge{}
	}

	return &PledgeListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
