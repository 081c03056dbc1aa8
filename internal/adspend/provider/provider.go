// Package provider integrates external ad platforms for daily spend pulls.
package provider

import (
	"context"
	"net/http"
	"time"
)

// Credentials is a decrypted provider credential set.
type Credentials map[string]string

// Source resolves decrypted credentials for a provider. ok=false means the
// provider has no stored credentials.
type Source interface {
	Credentials(ctx context.Context, provider string) (Credentials, bool, error)
}

// SpendReport is one day of spend as reported by a platform.
type SpendReport struct {
	Cost        float64
	Impressions int64
	Clicks      int64
}

// Provider pulls one day of ad spend from an external platform. A provider
// with no stored credentials reports zeroes rather than failing the pull.
type Provider interface {
	// Name is the ledger source this provider reports under.
	Name() string
	// DailySpend returns the spend for the given day (YYYY-MM-DD).
	DailySpend(ctx context.Context, day string) (SpendReport, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
