// Package transport defines response DTOs for the audit module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// EntryResponse is one audit record as returned to reviewers.
type EntryResponse struct {
	ID        uuid.UUID              `json:"id"`
	Action    string                 `json:"action"`
	Actor     string                 `json:"actor"`
	LeadID    uuid.UUID              `json:"leadId"`
	LeadName  string                 `json:"leadName"`
	LeadPhone string                 `json:"leadPhone"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
