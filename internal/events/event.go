// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadops_backend/platform/events"
	"leadops_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = func(log *logger.Logger) *InMemoryBus { return events.NewInMemoryBus(log) }
)

// LeadCreated is published when an inbound submission produced a new lead.
// Notification fan-out subscribes to it; failures there never reach the
// submission handler.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Region   string    `json:"region"`
	Source   string    `json:"source,omitempty"`
	Referrer string    `json:"referrer,omitempty"`
	ClientID string    `json:"clientId,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }
