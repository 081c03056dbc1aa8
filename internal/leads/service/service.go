// Package service implements lead intake and triage operations.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/events"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/transport"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/geo"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/phone"
)

// Audit action kinds written by the mutating lead operations.
const (
	ActionDelete     = "DELETE"
	ActionDownload   = "DOWNLOAD"
	ActionUpdateMemo = "UPDATE_MEMO"
)

// AuditRecorder appends immutable audit entries for a set of subject leads.
// Recording happens before destructive mutations so subject identity is
// captured while the rows still exist.
type AuditRecorder interface {
	Record(ctx context.Context, action, actor string, leadIDs []uuid.UUID, payload map[string]interface{}) error
}

// Service provides business logic for leads.
type Service struct {
	repo  repository.Repository
	audit AuditRecorder
	geo   geo.Resolver
	bus   events.Bus
	log   *logger.Logger
}

// New creates a new lead service.
func New(repo repository.Repository, audit AuditRecorder, resolver geo.Resolver, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, audit: audit, geo: resolver, bus: bus, log: log}
}

// Submission carries the transport-level context of an inbound submission.
type Submission struct {
	IP        string
	UserAgent string
}

// CreateLead handles an inbound contact submission. The canonical phone key
// enforces at most one lead per phone number; duplicates yield AlreadyExists.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest, sub Submission) (transport.CreateLeadResponse, error) {
	name := strings.TrimSpace(req.Name)
	region := strings.TrimSpace(req.Region)
	if name == "" || req.Phone == "" || region == "" {
		return transport.CreateLeadResponse{}, apperr.InvalidArgument("name, phone, region are required")
	}

	phoneE164, ok := phone.Canonical(req.Phone)
	if !ok {
		return transport.CreateLeadResponse{}, apperr.InvalidArgument("invalid phone number format")
	}

	exists, err := s.repo.ExistsByPhoneKey(ctx, phoneE164)
	if err != nil {
		return transport.CreateLeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to check phone key", err)
	}
	if exists {
		return transport.CreateLeadResponse{}, apperr.AlreadyExists("this phone number is already registered")
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:        name,
		PhoneRaw:    phone.Display(req.Phone),
		PhoneE164:   phoneE164,
		Region:      region,
		Source:      strings.TrimSpace(req.Source),
		Medium:      strings.TrimSpace(req.Medium),
		Campaign:    strings.TrimSpace(req.Campaign),
		Referrer:    strings.TrimSpace(req.Referrer),
		LandingPage: strings.TrimSpace(req.LandingPage),
		UserAgent:   sub.UserAgent,
		ClientID:    strings.TrimSpace(req.ClientID),
		GCLID:       strings.TrimSpace(req.GCLID),
		IPAddress:   sub.IP,
		IPCity:      s.geo.City(sub.IP),
	})
	if err != nil {
		if apperr.Is(err, apperr.KindAlreadyExists) {
			return transport.CreateLeadResponse{}, err
		}
		return transport.CreateLeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	// Downstream fan-out (new-lead mail, attribution enrichment) is
	// best-effort; the bus isolates failures.
	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Phone:     lead.PhoneRaw,
		Region:    lead.Region,
		Source:    lead.Source,
		Referrer:  lead.Referrer,
		ClientID:  lead.ClientID,
	})

	return transport.CreateLeadResponse{OK: true, ID: lead.ID}, nil
}

// DeleteLeads audits, then removes the leads as one atomic batch.
func (s *Service) DeleteLeads(ctx context.Context, actor string, rawIDs []string) (transport.DeleteLeadsResponse, error) {
	ids, err := parseIDs(rawIDs)
	if err != nil {
		return transport.DeleteLeadsResponse{}, err
	}

	// Record first: subject names/phones must be denormalized before the
	// rows disappear.
	if err := s.audit.Record(ctx, ActionDelete, actor, ids, nil); err != nil {
		return transport.DeleteLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to record audit entries", err)
	}

	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return transport.DeleteLeadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to delete leads", err)
	}

	return transport.DeleteLeadsResponse{Deleted: len(ids)}, nil
}

// IncrementDownloads audits, then bumps download counters as one atomic
// batch sharing a single timestamp.
func (s *Service) IncrementDownloads(ctx context.Context, actor string, rawIDs []string) (transport.IncrementDownloadsResponse, error) {
	ids, err := parseIDs(rawIDs)
	if err != nil {
		return transport.IncrementDownloadsResponse{}, err
	}

	if err := s.audit.Record(ctx, ActionDownload, actor, ids, nil); err != nil {
		return transport.IncrementDownloadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to record audit entries", err)
	}

	if err := s.repo.IncrementDownloads(ctx, ids, actor, time.Now()); err != nil {
		return transport.IncrementDownloadsResponse{}, apperr.Wrap(apperr.KindInternal, "failed to increment downloads", err)
	}

	return transport.IncrementDownloadsResponse{Updated: len(ids)}, nil
}

// UpdateMemo audits the old/new memo text and updates the lead.
func (s *Service) UpdateMemo(ctx context.Context, actor string, rawID string, memo, oldMemo string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apperr.InvalidArgument("leadId is required")
	}

	payload := map[string]interface{}{"from": oldMemo, "to": memo}
	if err := s.audit.Record(ctx, ActionUpdateMemo, actor, []uuid.UUID{id}, payload); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to record audit entries", err)
	}

	if err := s.repo.UpdateMemo(ctx, id, memo); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		return apperr.Wrap(apperr.KindInternal, "failed to update memo", err)
	}
	return nil
}

// SetStatus toggles one of the boolean triage flags on a lead.
func (s *Service) SetStatus(ctx context.Context, rawID, field string, value bool) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apperr.InvalidArgument("leadId is required")
	}

	flag, ok := repository.ParseFlag(field)
	if !ok {
		return apperr.InvalidArgument("field '" + field + "' is not updatable")
	}

	if err := s.repo.SetFlag(ctx, id, flag, value); err != nil {
		if apperr.Is(err, apperr.KindNotFound) || apperr.Is(err, apperr.KindInvalidArgument) {
			return err
		}
		return apperr.Wrap(apperr.KindInternal, "failed to set lead status", err)
	}
	return nil
}

func parseIDs(rawIDs []string) ([]uuid.UUID, error) {
	if len(rawIDs) == 0 {
		return nil, apperr.InvalidArgument("ids must be a non-empty array")
	}

	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.InvalidArgument("invalid lead id: " + raw)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
