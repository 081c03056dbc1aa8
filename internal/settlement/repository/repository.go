// Package repository persists the per-year settlement unit costs.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the settlement configuration surface. Unit costs are
// keyed by four-digit year.
type Repository interface {
	UnitCosts(ctx context.Context) (map[string]float64, error)
	SetUnitCost(ctx context.Context, year string, cost float64) error
}

// Repo implements the settlement repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new settlement repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// UnitCosts returns the configured per-lead unit cost for every year.
func (r *Repo) UnitCosts(ctx context.Context) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx, `SELECT year, cost FROM settlement_costs`)
	if err != nil {
		return nil, fmt.Errorf("settlement unit costs: %w", err)
	}
	defer rows.Close()

	costs := make(map[string]float64)
	for rows.Next() {
		var year string
		var cost float64
		if err := rows.Scan(&year, &cost); err != nil {
			return nil, fmt.Errorf("settlement unit costs: %w", err)
		}
		costs[year] = cost
	}
	return costs, rows.Err()
}

// SetUnitCost sets the per-lead unit cost for one year.
func (r *Repo) SetUnitCost(ctx context.Context, year string, cost float64) error {
	query := `
		INSERT INTO settlement_costs (year, cost, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (year) DO UPDATE SET
			cost       = EXCLUDED.cost,
			updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, year, cost); err != nil {
		return fmt.Errorf("set settlement unit cost: %w", err)
	}
	return nil
}
