// Package enrichment back-fills campaign attribution on freshly created
// leads from the analytics warehouse. Like notification, everything here is
// best-effort: a failed lookup is logged and dropped, the lead keeps
// whatever attribution the submission carried.
package enrichment

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadops_backend/internal/events"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/platform/logger"
)

// Attribution fields resolve to this when the warehouse row has no value.
const notSet = "(not set)"

// Campaign is the first-touch attribution of one visitor session.
type Campaign struct {
	Source   string
	Medium   string
	Campaign string
}

// CampaignSource resolves a visitor's first-touch campaign by GA client id.
// ok is false when the warehouse has no session for the visitor.
type CampaignSource interface {
	FirstTouch(ctx context.Context, clientID string) (Campaign, bool, error)
}

// LeadUpdater is the slice of the lead repository enrichment writes through.
type LeadUpdater interface {
	UpdateAttribution(ctx context.Context, id uuid.UUID, source, medium, campaign string) error
}

// Enricher subscribes to lead creation and rewrites the lead's attribution
// from the visitor's first session when the warehouse knows one.
type Enricher struct {
	source CampaignSource
	leads  LeadUpdater
	log    *logger.Logger
}

// NewEnricher creates an attribution enricher.
func NewEnricher(source CampaignSource, leads LeadUpdater, log *logger.Logger) *Enricher {
	return &Enricher{source: source, leads: leads, log: log}
}

// SubscribeToBus registers the enricher's event handlers.
func (e *Enricher) SubscribeToBus(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(e.onLeadCreated))
}

func (e *Enricher) onLeadCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok {
		return nil
	}
	if created.ClientID == "" {
		return nil
	}

	campaign, found, err := e.source.FirstTouch(ctx, created.ClientID)
	if err != nil {
		e.log.EnrichFailure(created.LeadID.String(), err)
		return nil
	}
	if !found {
		return nil
	}

	err = e.leads.UpdateAttribution(ctx, created.LeadID,
		orNotSet(campaign.Source), orNotSet(campaign.Medium), orNotSet(campaign.Campaign))
	if err != nil {
		e.log.EnrichFailure(created.LeadID.String(), err)
	}
	return nil
}

func orNotSet(value string) string {
	if strings.TrimSpace(value) == "" {
		return notSet
	}
	return value
}

var _ LeadUpdater = leadsrepo.Repository(nil)
