// Package transport defines request/response DTOs for the ad-spend module.
package transport

// SetAdCostRequest merges a manual correction into one (day, source) ledger
// cell. Absent fields keep their stored values.
type SetAdCostRequest struct {
	Day         string   `json:"day" validate:"required"`
	Source      string   `json:"source" validate:"required"`
	Cost        *float64 `json:"cost"`
	Impressions *int64   `json:"impressions"`
	Clicks      *int64   `json:"clicks"`
}

// CostEntry is one (day, source) ledger cell.
type CostEntry struct {
	Day         string  `json:"day"`
	Source      string  `json:"source"`
	Cost        float64 `json:"cost"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
}

// PullSpendRequest queues an immediate provider pull for one day.
type PullSpendRequest struct {
	Day string `json:"day" validate:"required,datetime=2006-01-02"`
}

// SetCredentialsRequest stores API credentials for an ad platform.
type SetCredentialsRequest struct {
	Provider    string            `json:"provider" validate:"required"`
	Credentials map[string]string `json:"credentials" validate:"required"`
}

// ClearCredentialsRequest removes stored API credentials.
type ClearCredentialsRequest struct {
	Provider string `json:"provider" validate:"required"`
}

// Ack is a minimal success acknowledgment.
type Ack struct {
	OK bool `json:"ok"`
}
