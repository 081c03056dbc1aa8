// Package email delivers the operator notification mails.
package email

import "context"

// NewLeadData fills the new-lead notification mail.
type NewLeadData struct {
	Name     string
	Phone    string
	Region   string
	Source   string
	Referrer string
}

// SummaryLead is one lead row of the daily summary mail.
type SummaryLead struct {
	Name   string
	Phone  string
	Source string
	Region string
}

// SourceCount is one per-source tally of the daily summary mail.
type SourceCount struct {
	Source string
	Count  int
}

// DailySummaryData fills the daily summary mail.
type DailySummaryData struct {
	Date         string
	TotalLeads   int
	SourceCounts []SourceCount
	Leads        []SummaryLead
}

// Sender delivers notification mails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendNewLeadEmail(ctx context.Context, to []string, data NewLeadData) error
	SendDailySummaryEmail(ctx context.Context, to []string, data DailySummaryData) error
}

// NoopSender discards all mail. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendNewLeadEmail(ctx context.Context, to []string, data NewLeadData) error {
	return nil
}

func (NoopSender) SendDailySummaryEmail(ctx context.Context, to []string, data DailySummaryData) error {
	return nil
}

var _ Sender = (*NoopSender)(nil)
