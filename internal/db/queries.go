package db

import (
	"context"
	"database/sql"

	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/pledge"
)

const pledgeColumns = `
	id, species_id, species_name, annual_sequestration_kg,
	tree_count, duration_years, target_kg, total_sequestered_kg,
	note, created_at
`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Insert stores a new pledge.
func Insert(ctx context.Context, db *sql.DB, p *pledge.Pledge) error {
	query := `INSERT INTO pledges (` + pledgeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, query,
		p.ID, p.SpeciesID, p.SpeciesName, p.AnnualSequestrationKg,
		p.TreeCount, p.DurationYears, p.TargetKg, p.TotalSequesteredKg,
		toNullString(p.Note), p.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves a pledge by its ULID.
func GetByID(ctx context.Context, db *sql.DB, id string) (*pledge.Pledge, error) {
	query := `SELECT ` + pledgeColumns + ` FROM pledges WHERE id = ?`

	p, err := scanPledge(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewPledgeNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return p, nil
}

// List returns pledges newest first, plus the total count.
func List(ctx context.Context, db *sql.DB, limit, offset int) ([]pledge.Pledge, int, error) {
	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pledges`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + pledgeColumns + ` FROM pledges
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`

	rows, err := db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var items []pledge.Pledge
	for rows.Next() {
		p, err := scanPledge(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return items, total, nil
}

// Delete permanently removes a pledge.
func Delete(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM pledges WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewPledgeNotFound(id)
	}
	return nil
}

// Totals aggregates every stored pledge.
func Totals(ctx context.Context, db *sql.DB) (pledge.Totals, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(tree_count), 0),
			COALESCE(SUM(target_kg), 0),
			COALESCE(SUM(total_sequestered_kg), 0)
		FROM pledges
	`

	var t pledge.Totals
	err := db.QueryRowContext(ctx, query).Scan(&t.Pledges, &t.Trees, &t.TargetKg, &t.TotalSequesteredKg)
	if err != nil {
		return pledge.Totals{}, errors.NewInternal(err)
	}
	return t, nil
}

// scanPledge scans a single row into a Pledge struct.
func scanPledge(row rowScanner) (*pledge.Pledge, error) {
	var (
		p    pledge.Pledge
		note sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.SpeciesID, &p.SpeciesName, &p.AnnualSequestrationKg,
		&p.TreeCount, &p.DurationYears, &p.TargetKg, &p.TotalSequesteredKg,
		&note, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Note = fromNullString(note)
	return &p, nil
}

// toNullString converts a *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts a sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
