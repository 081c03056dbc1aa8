// Package service implements audit trail recording and review.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/audit/repository"
	"leadops_backend/internal/audit/transport"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

// DefaultListLimit is what callers pass when no limit was requested; an
// explicit limit outside [1, maxListLimit] is rejected, zero included.
const DefaultListLimit = 100

const (
	maxListLimit = 500

	// Subject rows that no longer resolve still get an audit record with
	// this placeholder identity.
	unknownSubject = "Unknown"
)

// Service provides business logic for the audit trail.
type Service struct {
	repo  repository.Repository
	leads leadsrepo.Repository
	log   *logger.Logger
}

// New creates a new audit service.
func New(repo repository.Repository, leads leadsrepo.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, leads: leads, log: log}
}

// Record writes one audit entry per subject lead, denormalizing each lead's
// current name and phone. All entries of a call share a single timestamp.
func (s *Service) Record(ctx context.Context, action, actor string, leadIDs []uuid.UUID, payload map[string]interface{}) error {
	if len(leadIDs) == 0 {
		return nil
	}

	subjects, err := s.leads.GetByIDs(ctx, leadIDs)
	if err != nil {
		return err
	}

	entries := make([]repository.CreateEntryParams, 0, len(leadIDs))
	for _, id := range leadIDs {
		name, phone := unknownSubject, unknownSubject
		if lead, ok := subjects[id]; ok {
			name, phone = lead.Name, lead.PhoneRaw
		}
		entries = append(entries, repository.CreateEntryParams{
			Action:    action,
			Actor:     actor,
			LeadID:    id,
			LeadName:  name,
			LeadPhone: phone,
			Payload:   payload,
		})
	}

	return s.repo.CreateBatch(ctx, entries, time.Now())
}

// List returns the newest audit entries, at most limit of them. Limit is
// capped at 500.
func (s *Service) List(ctx context.Context, limit int) ([]transport.EntryResponse, error) {
	if limit < 1 || limit > maxListLimit {
		return nil, apperr.InvalidArgument("limit must be between 1 and 500")
	}

	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list audit entries", err)
	}

	result := make([]transport.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, transport.EntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			Actor:     e.Actor,
			LeadID:    e.LeadID,
			LeadName:  e.LeadName,
			LeadPhone: e.LeadPhone,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		})
	}
	return result, nil
}
