package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/errors"
)

// PledgeDeleteInput contains parameters for the PledgeDelete operation.
type PledgeDeleteInput struct {
	ID string
}

// PledgeDeleteOutput contains the result of the PledgeDelete operation.
type PledgeDeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// PledgeDelete permanently removes a pledge.
func PledgeDelete(ctx context.Context, database *sql.DB, input PledgeDeleteInput) (*PledgeDeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := db.Delete(ctx, database, id); err != nil {
		return nil, err
	}

	return &PledgeDeleteOutput{Deleted: true, ID: id}, nil
}
