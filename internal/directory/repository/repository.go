// Package repository provides storage for the role directory record.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leadops_backend/internal/directory/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The directory lives in exactly one row; the migration pins id to 1.
const (
	getDirectoryQuery = `SELECT roles, notifications, version FROM role_directory WHERE id = 1`

	setRoleQuery = `
		UPDATE role_directory
		SET roles = roles || jsonb_build_object($1::text, $2::text),
			notifications = jsonb_build_object($3::text, $4::jsonb) || notifications,
			version = version + 1,
			updated_at = now()
		WHERE id = 1`

	removeRoleQuery = `
		UPDATE role_directory
		SET roles = roles - $1::text,
			notifications = notifications - $2::text,
			version = version + 1,
			updated_at = now()
		WHERE id = 1`

	setNotificationPrefQuery = `
		UPDATE role_directory
		SET notifications = notifications ||
			jsonb_build_object(
				$1::text,
				COALESCE(notifications -> $1::text, '{}'::jsonb) || jsonb_build_object($2::text, $3::boolean)
			),
			version = version + 1,
			updated_at = now()
		WHERE id = 1`
)

// Repository defines role directory storage operations. The directory is a
// single versioned row; every authorization check reads it fresh.
type Repository interface {
	Get(ctx context.Context) (domain.Directory, error)
	SetRole(ctx context.Context, identifier string, role domain.Role) error
	RemoveRole(ctx context.Context, storedKey string) error
	SetNotificationPref(ctx context.Context, identifier, field string, value bool) error
}

// Repo implements Repository on Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Get loads the directory record. A missing row yields an empty directory,
// which resolves every identifier to "no role".
func (r *Repo) Get(ctx context.Context) (domain.Directory, error) {
	var rolesRaw, notifRaw []byte
	var version int64
	if err := r.pool.QueryRow(ctx, getDirectoryQuery).Scan(&rolesRaw, &notifRaw, &version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Directory{
				Roles:         map[string]domain.Role{},
				Notifications: map[string]domain.NotificationPrefs{},
			}, nil
		}
		return domain.Directory{}, fmt.Errorf("get role directory: %w", err)
	}

	dir := domain.Directory{
		Roles:         map[string]domain.Role{},
		Notifications: map[string]domain.NotificationPrefs{},
		Version:       version,
	}

	var roles map[string]string
	if err := json.Unmarshal(rolesRaw, &roles); err != nil {
		return domain.Directory{}, fmt.Errorf("decode roles map: %w", err)
	}
	for key, value := range roles {
		dir.Roles[key] = domain.Role(value)
	}

	if err := json.Unmarshal(notifRaw, &dir.Notifications); err != nil {
		return domain.Directory{}, fmt.Errorf("decode notifications map: %w", err)
	}

	return dir, nil
}

// SetRole upserts a role entry and seeds default notification prefs for the
// identifier, merging into the maps without touching sibling entries.
func (r *Repo) SetRole(ctx context.Context, identifier string, role domain.Role) error {
	prefs, err := json.Marshal(domain.NotificationPrefs{
		OnNewLead:      boolPtr(true),
		OnDailySummary: boolPtr(true),
	})
	if err != nil {
		return fmt.Errorf("encode notification prefs: %w", err)
	}

	tag, err := r.pool.Exec(ctx, setRoleQuery, identifier, role.String(), domain.SanitizeIdentifier(identifier), prefs)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("role directory record missing")
	}
	return nil
}

// RemoveRole deletes the role and notification entries for a stored key.
func (r *Repo) RemoveRole(ctx context.Context, storedKey string) error {
	if _, err := r.pool.Exec(ctx, removeRoleQuery, storedKey, domain.SanitizeIdentifier(storedKey)); err != nil {
		return fmt.Errorf("remove role: %w", err)
	}
	return nil
}

// SetNotificationPref merges a single flag into the identifier's prefs entry.
func (r *Repo) SetNotificationPref(ctx context.Context, identifier, field string, value bool) error {
	if _, err := r.pool.Exec(ctx, setNotificationPrefQuery, domain.SanitizeIdentifier(identifier), field, value); err != nil {
		return fmt.Errorf("set notification pref: %w", err)
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }
