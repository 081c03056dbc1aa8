// Package transport defines request/response DTOs for the leads module.
package transport

import "github.com/google/uuid"

// CreateLeadRequest is an inbound contact submission. Attribution fields are
// optional and recorded as-is.
type CreateLeadRequest struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Phone       string `json:"phone" form:"phone" validate:"required"`
	Region      string `json:"region" form:"region" validate:"required"`
	Source      string `json:"source" form:"source"`
	Medium      string `json:"medium" form:"medium"`
	Campaign    string `json:"campaign" form:"campaign"`
	Referrer    string `json:"referrer" form:"referrer"`
	LandingPage string `json:"landingPage" form:"landingPage"`
	ClientID    string `json:"clientId" form:"clientId"`
	GCLID       string `json:"gclid" form:"gclid"`
}

// CreateLeadResponse acknowledges a stored submission.
type CreateLeadResponse struct {
	OK bool      `json:"ok"`
	ID uuid.UUID `json:"id"`
}

// BatchIDsRequest carries the id set for batch delete and download marking.
type BatchIDsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// DeleteLeadsResponse reports how many leads were removed.
type DeleteLeadsResponse struct {
	Deleted int `json:"deleted"`
}

// IncrementDownloadsResponse reports how many leads were marked downloaded.
type IncrementDownloadsResponse struct {
	Updated int `json:"updated"`
}

// UpdateMemoRequest replaces the memo text on one lead. OldMemo is the text
// the caller last saw; it is denormalized into the audit trail.
type UpdateMemoRequest struct {
	LeadID  string `json:"leadId" validate:"required,uuid"`
	Memo    string `json:"memo"`
	OldMemo string `json:"oldMemo"`
}

// SetStatusRequest toggles one boolean triage flag on a lead.
type SetStatusRequest struct {
	LeadID string `json:"leadId" validate:"required,uuid"`
	Field  string `json:"field" validate:"required"`
	Value  *bool  `json:"value" validate:"required"`
}

// Ack is a minimal success acknowledgment.
type Ack struct {
	OK bool `json:"ok"`
}
