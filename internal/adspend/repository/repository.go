// Package repository persists the daily ad-spend ledger.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is the spend recorded for one (day, source) cell of the ledger.
type Entry struct {
	Day         string  `db:"day"`
	Source      string  `db:"source"`
	Cost        float64 `db:"cost"`
	Impressions int64   `db:"impressions"`
	Clicks      int64   `db:"clicks"`
}

// UpsertParams carries a partial update for one ledger cell. Nil fields
// leave the stored value untouched; absent cells are created with zeroes
// for the nil fields.
type UpsertParams struct {
	Day         string
	Source      string
	Cost        *float64
	Impressions *int64
	Clicks      *int64
}

// Repository defines the ad-spend ledger surface.
type Repository interface {
	Upsert(ctx context.Context, params UpsertParams) error
	ListBetween(ctx context.Context, startDay, endDay string) ([]Entry, error)
	SumCostBetween(ctx context.Context, startDay, endDay string) (float64, error)
}

// Repo implements the ad-spend repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ad-spend repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Upsert merges the given fields into the (day, source) cell. The merge is
// per field so a cost-only write does not clobber impressions recorded by
// the provider pull, and vice versa.
func (r *Repo) Upsert(ctx context.Context, params UpsertParams) error {
	query := `
		INSERT INTO ad_costs (day, source, cost, impressions, clicks, updated_at)
		VALUES ($1::date, $2, COALESCE($3, 0), COALESCE($4, 0), COALESCE($5, 0), $6)
		ON CONFLICT (day, source) DO UPDATE SET
			cost        = COALESCE($3, ad_costs.cost),
			impressions = COALESCE($4, ad_costs.impressions),
			clicks      = COALESCE($5, ad_costs.clicks),
			updated_at  = $6`

	_, err := r.pool.Exec(ctx, query,
		params.Day, params.Source, params.Cost, params.Impressions, params.Clicks, time.Now())
	if err != nil {
		return fmt.Errorf("upsert ad cost: %w", err)
	}
	return nil
}

// ListBetween returns ledger cells for days in [startDay, endDay], ordered
// by day then source.
func (r *Repo) ListBetween(ctx context.Context, startDay, endDay string) ([]Entry, error) {
	query := `
		SELECT to_char(day, 'YYYY-MM-DD'), source, cost, impressions, clicks
		FROM ad_costs
		WHERE day >= $1::date AND day <= $2::date
		ORDER BY day ASC, source ASC`

	rows, err := r.pool.Query(ctx, query, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("list ad costs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Day, &e.Source, &e.Cost, &e.Impressions, &e.Clicks); err != nil {
			return nil, fmt.Errorf("list ad costs: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SumCostBetween totals spend across all sources for days in
// [startDay, endDay].
func (r *Repo) SumCostBetween(ctx context.Context, startDay, endDay string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(cost), 0)
		FROM ad_costs
		WHERE day >= $1::date AND day <= $2::date`

	var total float64
	if err := r.pool.QueryRow(ctx, query, startDay, endDay).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum ad costs: %w", err)
	}
	return total, nil
}
