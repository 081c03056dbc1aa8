package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"leadops_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `
	id, name, phone_raw, phone_e164, region, memo,
	is_defect, visited, procedure_done,
	source, medium, campaign, referrer, landing_page, user_agent, client_id, gclid,
	ip_address, ip_city,
	download_count, downloaded_at, downloaded_by, created_at`

// Repo implements the lead repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.PhoneRaw, &lead.PhoneE164, &lead.Region, &lead.Memo,
		&lead.Defect, &lead.Visited, &lead.Procedure,
		&lead.Source, &lead.Medium, &lead.Campaign, &lead.Referrer, &lead.LandingPage,
		&lead.UserAgent, &lead.ClientID, &lead.GCLID,
		&lead.IPAddress, &lead.IPCity,
		&lead.DownloadCount, &lead.DownloadedAt, &lead.DownloadedBy, &lead.CreatedAt,
	)
	return lead, err
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// Create inserts a lead; the store assigns id and creation timestamp.
// A duplicate canonical phone key yields AlreadyExists.
func (r *Repo) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	query := `
		INSERT INTO leads (
			name, phone_raw, phone_e164, region,
			source, medium, campaign, referrer, landing_page, user_agent, client_id, gclid,
			ip_address, ip_city
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.Name, params.PhoneRaw, params.PhoneE164, params.Region,
		params.Source, params.Medium, params.Campaign, params.Referrer,
		params.LandingPage, params.UserAgent, params.ClientID, params.GCLID,
		params.IPAddress, params.IPCity,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Lead{}, apperr.AlreadyExists("this phone number is already registered")
		}
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// ExistsByPhoneKey checks the canonical phone dedup key.
func (r *Repo) ExistsByPhoneKey(ctx context.Context, phoneE164 string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM leads WHERE phone_e164 = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, phoneE164).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists by phone key: %w", err)
	}
	return exists, nil
}

// GetByIDs batch-fetches leads, chunking the id-set predicate at
// MaxIDsPerBatch and running the chunks in parallel. Ids with no matching
// lead are simply absent from the result map.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Lead, error) {
	result := make(map[uuid.UUID]Lead, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	for _, chunk := range chunkIDs(ids, MaxIDsPerBatch) {
		group.Go(func() error {
			query := `SELECT` + leadColumns + ` FROM leads WHERE id = ANY($1)`
			rows, err := r.pool.Query(groupCtx, query, chunk)
			if err != nil {
				return fmt.Errorf("get leads by ids: %w", err)
			}
			leads, err := collectLeads(rows)
			if err != nil {
				return fmt.Errorf("get leads by ids: %w", err)
			}

			mu.Lock()
			for _, lead := range leads {
				result[lead.ID] = lead
			}
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreatedBetween returns leads created in [start, end), oldest first.
func (r *Repo) CreatedBetween(ctx context.Context, start, end time.Time) ([]Lead, error) {
	query := `SELECT` + leadColumns + `
		FROM leads
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("leads created between: %w", err)
	}
	return collectLeads(rows)
}

// DownloadedBetween returns leads last downloaded in [start, end), oldest first.
func (r *Repo) DownloadedBetween(ctx context.Context, start, end time.Time) ([]Lead, error) {
	query := `SELECT` + leadColumns + `
		FROM leads
		WHERE downloaded_at >= $1 AND downloaded_at < $2
		ORDER BY downloaded_at ASC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("leads downloaded between: %w", err)
	}
	return collectLeads(rows)
}

// CountAll counts the whole collection without materializing rows.
func (r *Repo) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return count, nil
}

// CountCreatedSince counts leads created at or after the given instant.
func (r *Repo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM leads WHERE created_at >= $1`
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count leads since: %w", err)
	}
	return count, nil
}

// UpdateMemo replaces the free-text note on a lead.
func (r *Repo) UpdateMemo(ctx context.Context, id uuid.UUID, memo string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET memo = $2 WHERE id = $1`, id, memo)
	if err != nil {
		return fmt.Errorf("update memo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// UpdateAttribution replaces the campaign attribution fields on a lead.
func (r *Repo) UpdateAttribution(ctx context.Context, id uuid.UUID, source, medium, campaign string) error {
	query := `UPDATE leads SET source = $2, medium = $3, campaign = $4 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, source, medium, campaign)
	if err != nil {
		return fmt.Errorf("update attribution: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// SetFlag toggles one of the boolean lead attributes.
func (r *Repo) SetFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error {
	var column string
	switch flag {
	case FlagDefect:
		column = "is_defect"
	case FlagVisited:
		column = "visited"
	case FlagProcedure:
		column = "procedure_done"
	default:
		return apperr.InvalidArgument(fmt.Sprintf("field %q is not updatable", flag))
	}

	query := fmt.Sprintf(`UPDATE leads SET %s = $2 WHERE id = $1`, column)
	tag, err := r.pool.Exec(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("set lead flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// DeleteByIDs removes leads in one transaction; either all rows go or none.
func (r *Repo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM leads WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete leads: %w", err)
	}

	return tx.Commit(ctx)
}

// IncrementDownloads bumps download counters in one transaction, stamping
// every row with the same timestamp and actor.
func (r *Repo) IncrementDownloads(ctx context.Context, ids []uuid.UUID, actor string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("increment downloads: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE leads
		SET download_count = download_count + 1,
			downloaded_at = $2,
			downloaded_by = $3
		WHERE id = ANY($1)`
	if _, err := tx.Exec(ctx, query, ids, at, actor); err != nil {
		return fmt.Errorf("increment downloads: %w", err)
	}

	return tx.Commit(ctx)
}
