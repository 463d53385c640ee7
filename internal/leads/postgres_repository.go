package leads

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type pgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db pgxQuerier
}

// NewPostgresRepository initializes a repo backed by a pgx pool (or anything with the same query surface).
func NewPostgresRepository(db pgxQuerier) *PostgresRepository {
	if db == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

// Insert adds a row; the database assigns id and created_at.
func (r *PostgresRepository) Insert(ctx context.Context, rec Record) (*Lead, error) {
	query := `
		INSERT INTO leads (name, email, interest)
		VALUES ($1, $2, $3)
		RETURNING id::text, created_at
	`
	lead := Lead{
		Name:     rec.Name,
		Email:    rec.Email,
		Interest: rec.Interest,
	}
	if err := r.db.QueryRow(ctx, query, rec.Name, rec.Email, string(rec.Interest)).Scan(&lead.ID, &lead.CreatedAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}
	return &lead, nil
}

// List pages through leads, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	filter = filter.normalized()
	query := `
		SELECT id::text, name, email, interest, created_at
		FROM leads
		WHERE ($1 = '' OR interest = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, string(filter.Interest), filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		var lead Lead
		var interest string
		if err := rows.Scan(&lead.ID, &lead.Name, &lead.Email, &interest, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		lead.Interest = Interest(interest)
		out = append(out, &lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return out, nil
}
