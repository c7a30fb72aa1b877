package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/pledge"
)

// PledgeFetchInput contains parameters for the PledgeFetch operation.
type PledgeFetchInput struct {
	ID string
}

// PledgeFetch retrieves a pledge by ID.
func PledgeFetch(ctx context.Context, database *sql.DB, input PledgeFetchInput) (*pledge.Pledge, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return db.GetByID(ctx, database, id)
}
