package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CredentialsRepository stores encrypted provider API credentials.
type CredentialsRepository interface {
	// Get returns the encrypted payload for a provider, or ok=false when no
	// credentials are stored.
	Get(ctx context.Context, provider string) (payload string, ok bool, err error)
	Set(ctx context.Context, provider, payload string) error
	Delete(ctx context.Context, provider string) error
}

// CredentialsRepo implements CredentialsRepository on Postgres.
type CredentialsRepo struct {
	pool *pgxpool.Pool
}

// NewCredentials creates a new credentials repository.
func NewCredentials(pool *pgxpool.Pool) *CredentialsRepo {
	return &CredentialsRepo{pool: pool}
}

var _ CredentialsRepository = (*CredentialsRepo)(nil)

func (r *CredentialsRepo) Get(ctx context.Context, provider string) (string, bool, error) {
	var payload string
	err := r.pool.QueryRow(ctx,
		`SELECT payload_enc FROM api_credentials WHERE provider = $1`, provider).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get credentials: %w", err)
	}
	return payload, true, nil
}

func (r *CredentialsRepo) Set(ctx context.Context, provider, payload string) error {
	query := `
		INSERT INTO api_credentials (provider, payload_enc, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (provider) DO UPDATE SET
			payload_enc = EXCLUDED.payload_enc,
			updated_at  = now()`

	if _, err := r.pool.Exec(ctx, query, provider, payload); err != nil {
		return fmt.Errorf("set credentials: %w", err)
	}
	return nil
}

func (r *CredentialsRepo) Delete(ctx context.Context, provider string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM api_credentials WHERE provider = $1`, provider); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}
