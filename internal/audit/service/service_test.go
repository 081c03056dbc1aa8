package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/audit/repository"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

type fakeAuditRepo struct {
	entries   []repository.CreateEntryParams
	batchAt   time.Time
	listed    []repository.Entry
	listLimit int
}

func (f *fakeAuditRepo) CreateBatch(ctx context.Context, entries []repository.CreateEntryParams, at time.Time) error {
	f.entries = entries
	f.batchAt = at
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, limit int) ([]repository.Entry, error) {
	f.listLimit = limit
	return f.listed, nil
}

type fakeLeadsRepo struct {
	leadsrepo.Repository

	leads map[uuid.UUID]leadsrepo.Lead
}

func (f *fakeLeadsRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]leadsrepo.Lead, error) {
	return f.leads, nil
}

func TestRecord_DenormalizesSubjects(t *testing.T) {
	known := uuid.New()
	missing := uuid.New()
	repo := &fakeAuditRepo{}
	leads := &fakeLeadsRepo{leads: map[uuid.UUID]leadsrepo.Lead{
		known: {ID: known, Name: "홍길동", PhoneRaw: "010-1234-5678"},
	}}
	svc := New(repo, leads, logger.New("development"))

	err := svc.Record(context.Background(), "DELETE", "ops@example.com", []uuid.UUID{known, missing}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(repo.entries))
	}
	if repo.entries[0].LeadName != "홍길동" || repo.entries[0].LeadPhone != "010-1234-5678" {
		t.Fatalf("expected denormalized subject, got %+v", repo.entries[0])
	}
	if repo.entries[1].LeadName != "Unknown" || repo.entries[1].LeadPhone != "Unknown" {
		t.Fatalf("expected Unknown placeholder for missing subject, got %+v", repo.entries[1])
	}
	if repo.entries[0].Action != "DELETE" || repo.entries[0].Actor != "ops@example.com" {
		t.Fatalf("unexpected action/actor: %+v", repo.entries[0])
	}
	if repo.batchAt.IsZero() {
		t.Fatalf("expected a shared batch timestamp")
	}
}

func TestRecord_NoSubjectsIsNoop(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := New(repo, &fakeLeadsRepo{}, logger.New("development"))

	if err := svc.Record(context.Background(), "DELETE", "ops@example.com", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.entries != nil {
		t.Fatalf("expected no batch write, got %v", repo.entries)
	}
}

func TestList_BoundsLimit(t *testing.T) {
	repo := &fakeAuditRepo{listed: []repository.Entry{
		{ID: uuid.New(), Action: "DOWNLOAD", Actor: "ops@example.com", LeadName: "홍길동"},
	}}
	svc := New(repo, &fakeLeadsRepo{}, logger.New("development"))

	entries, err := svc.List(context.Background(), DefaultListLimit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listLimit != 100 {
		t.Fatalf("expected limit 100 passed through, got %d", repo.listLimit)
	}
	if len(entries) != 1 || entries[0].LeadName != "홍길동" {
		t.Fatalf("unexpected entries: %v", entries)
	}

	for _, limit := range []int{0, -1, 501} {
		if _, err := svc.List(context.Background(), limit); !apperr.Is(err, apperr.KindInvalidArgument) {
			t.Fatalf("expected InvalidArgument for limit %d, got %v", limit, err)
		}
	}
}
