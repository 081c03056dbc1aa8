// Package repository persists the append-only audit trail.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one immutable audit record. Subject name and phone are
// denormalized at write time so the trail survives lead deletion.
type Entry struct {
	ID        uuid.UUID              `db:"id"`
	Action    string                 `db:"action"`
	Actor     string                 `db:"actor"`
	LeadID    uuid.UUID              `db:"lead_id"`
	LeadName  string                 `db:"lead_name"`
	LeadPhone string                 `db:"lead_phone"`
	Payload   map[string]interface{} `db:"payload"`
	CreatedAt time.Time              `db:"created_at"`
}

// CreateEntryParams contains data for one audit record; the batch timestamp
// is supplied by the caller so every record of a batch shares it.
type CreateEntryParams struct {
	Action    string
	Actor     string
	LeadID    uuid.UUID
	LeadName  string
	LeadPhone string
	Payload   map[string]interface{}
}

const (
	insertEntryQuery = `
		INSERT INTO audit_log (action, actor, lead_id, lead_name, lead_phone, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	// The id tiebreak keeps listing order stable across entries sharing a
	// batch timestamp, so a longer listing always extends a shorter one.
	listEntriesQuery = `
		SELECT id, action, actor, lead_id, lead_name, lead_phone, payload, created_at
		FROM audit_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
)

// Repository defines the audit trail surface. There is no update or delete.
type Repository interface {
	CreateBatch(ctx context.Context, entries []CreateEntryParams, at time.Time) error
	List(ctx context.Context, limit int) ([]Entry, error)
}

// Repo implements the audit repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// CreateBatch appends audit records in one transaction, stamping every
// record with the same timestamp.
func (r *Repo) CreateBatch(ctx context.Context, entries []CreateEntryParams, at time.Time) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create audit batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(insertEntryQuery, e.Action, e.Actor, e.LeadID, e.LeadName, e.LeadPhone, e.Payload, at)
	}

	results := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("create audit batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("create audit batch: %w", err)
	}

	return tx.Commit(ctx)
}

// List returns the newest entries first, at most limit of them.
func (r *Repo) List(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, listEntriesQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Actor, &e.LeadID, &e.LeadName, &e.LeadPhone, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list audit entries: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
