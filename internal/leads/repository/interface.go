package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Lead is one inbound contact submission.
type Lead struct {
	ID            uuid.UUID  `db:"id"`
	Name          string     `db:"name"`
	PhoneRaw      string     `db:"phone_raw"`
	PhoneE164     string     `db:"phone_e164"`
	Region        string     `db:"region"`
	Memo          string     `db:"memo"`
	Defect        bool       `db:"is_defect"`
	Visited       bool       `db:"visited"`
	Procedure     bool       `db:"procedure_done"`
	Source        string     `db:"source"`
	Medium        string     `db:"medium"`
	Campaign      string     `db:"campaign"`
	Referrer      string     `db:"referrer"`
	LandingPage   string     `db:"landing_page"`
	UserAgent     string     `db:"user_agent"`
	ClientID      string     `db:"client_id"`
	GCLID         string     `db:"gclid"`
	IPAddress     string     `db:"ip_address"`
	IPCity        string     `db:"ip_city"`
	DownloadCount int        `db:"download_count"`
	DownloadedAt  *time.Time `db:"downloaded_at"`
	DownloadedBy  *string    `db:"downloaded_by"`
	CreatedAt     time.Time  `db:"created_at"`
}

// CreateLeadParams contains data for creating a lead. Creation timestamp is
// store-assigned.
type CreateLeadParams struct {
	Name        string
	PhoneRaw    string
	PhoneE164   string
	Region      string
	Source      string
	Medium      string
	Campaign    string
	Referrer    string
	LandingPage string
	UserAgent   string
	ClientID    string
	GCLID       string
	IPAddress   string
	IPCity      string
}

// Flag identifies the boolean lead attributes that can be toggled.
type Flag string

const (
	FlagDefect    Flag = "defect"
	FlagVisited   Flag = "visited"
	FlagProcedure Flag = "procedure"
)

// ParseFlag validates a caller-supplied flag name.
func ParseFlag(raw string) (Flag, bool) {
	switch Flag(raw) {
	case FlagDefect, FlagVisited, FlagProcedure:
		return Flag(raw), true
	default:
		return "", false
	}
}

// Repository defines the query surface over the lead collection.
type Repository interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	ExistsByPhoneKey(ctx context.Context, phoneE164 string) (bool, error)

	// GetByIDs batch-fetches leads by id set, chunking the membership
	// predicate at MaxIDsPerBatch per query.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Lead, error)

	// CreatedBetween returns leads whose creation time falls in the
	// half-open window [start, end).
	CreatedBetween(ctx context.Context, start, end time.Time) ([]Lead, error)
	// DownloadedBetween returns leads whose last download time falls in the
	// half-open window [start, end).
	DownloadedBetween(ctx context.Context, start, end time.Time) ([]Lead, error)

	// CountAll is a count-only query over the entire collection.
	CountAll(ctx context.Context) (int64, error)
	// CountCreatedSince is a count-only query over [since, now).
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)

	UpdateMemo(ctx context.Context, id uuid.UUID, memo string) error
	// UpdateAttribution replaces the campaign attribution fields, used by
	// post-create enrichment when a better first-touch record is found.
	UpdateAttribution(ctx context.Context, id uuid.UUID, source, medium, campaign string) error
	SetFlag(ctx context.Context, id uuid.UUID, flag Flag, value bool) error

	// DeleteByIDs removes leads as a single atomic batch.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	// IncrementDownloads bumps the download counter for every id as a single
	// atomic batch, stamping all rows with one shared timestamp and actor.
	IncrementDownloads(ctx context.Context, ids []uuid.UUID, actor string, at time.Time) error
}
