package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/events"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/transport"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/geo"
	"leadops_backend/platform/logger"
)

// fakeRepo embeds the interface so only the methods a test exercises need
// overriding; calling anything else panics loudly.
type fakeRepo struct {
	repository.Repository

	trace *[]string

	phoneExists bool
	created     repository.CreateLeadParams
	deletedIDs  []uuid.UUID
	memoID      uuid.UUID
	memo        string
	flagID      uuid.UUID
	flag        repository.Flag
	flagValue   bool
}

func (f *fakeRepo) ExistsByPhoneKey(ctx context.Context, phoneE164 string) (bool, error) {
	return f.phoneExists, nil
}

func (f *fakeRepo) Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	f.created = params
	return repository.Lead{
		ID:        uuid.New(),
		Name:      params.Name,
		PhoneRaw:  params.PhoneRaw,
		PhoneE164: params.PhoneE164,
		Region:    params.Region,
		Source:    params.Source,
		Referrer:  params.Referrer,
		CreatedAt: time.Now(),
	}, nil
}

func (f *fakeRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	f.deletedIDs = ids
	if f.trace != nil {
		*f.trace = append(*f.trace, "delete")
	}
	return nil
}

func (f *fakeRepo) IncrementDownloads(ctx context.Context, ids []uuid.UUID, actor string, at time.Time) error {
	if f.trace != nil {
		*f.trace = append(*f.trace, "download")
	}
	return nil
}

func (f *fakeRepo) UpdateMemo(ctx context.Context, id uuid.UUID, memo string) error {
	f.memoID = id
	f.memo = memo
	return nil
}

func (f *fakeRepo) SetFlag(ctx context.Context, id uuid.UUID, flag repository.Flag, value bool) error {
	f.flagID = id
	f.flag = flag
	f.flagValue = value
	return nil
}

type fakeAudit struct {
	trace *[]string

	action  string
	actor   string
	leadIDs []uuid.UUID
	payload map[string]interface{}
}

func (f *fakeAudit) Record(ctx context.Context, action, actor string, leadIDs []uuid.UUID, payload map[string]interface{}) error {
	f.action = action
	f.actor = actor
	f.leadIDs = leadIDs
	f.payload = payload
	if f.trace != nil {
		*f.trace = append(*f.trace, "audit")
	}
	return nil
}

type fakeBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeBus) Publish(ctx context.Context, event events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeBus) PublishSync(ctx context.Context, event events.Event) error {
	f.Publish(ctx, event)
	return nil
}

func (f *fakeBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService(repo *fakeRepo, audit *fakeAudit, bus *fakeBus) *Service {
	resolver, _ := geo.NewResolver("")
	return New(repo, audit, resolver, bus, logger.New("development"))
}

func TestCreateLead_PublishesEvent(t *testing.T) {
	repo := &fakeRepo{}
	bus := &fakeBus{}
	svc := newTestService(repo, &fakeAudit{}, bus)

	resp, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
		Name:   "  홍길동 ",
		Phone:  "010-1234-5678",
		Region: "서울",
		Source: "google",
	}, Submission{IP: "203.0.113.10", UserAgent: "test-agent"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.OK || resp.ID == uuid.Nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if repo.created.Name != "홍길동" {
		t.Fatalf("expected trimmed name, got %q", repo.created.Name)
	}
	if repo.created.PhoneE164 != "+821012345678" {
		t.Fatalf("expected canonical phone key, got %q", repo.created.PhoneE164)
	}
	if repo.created.PhoneRaw != "010-1234-5678" {
		t.Fatalf("expected display phone, got %q", repo.created.PhoneRaw)
	}
	if repo.created.UserAgent != "test-agent" || repo.created.IPAddress != "203.0.113.10" {
		t.Fatalf("expected submission context on params, got %+v", repo.created)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.events))
	}
	created, ok := bus.events[0].(events.LeadCreated)
	if !ok {
		t.Fatalf("expected LeadCreated, got %T", bus.events[0])
	}
	if created.Name != "홍길동" || created.Source != "google" {
		t.Fatalf("unexpected event payload: %+v", created)
	}
}

func TestCreateLead_RejectsMissingFields(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeAudit{}, &fakeBus{})

	_, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
		Name: "홍길동", Phone: "01012345678",
	}, Submission{})
	if !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestCreateLead_RejectsInvalidPhone(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeAudit{}, &fakeBus{})

	_, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
		Name: "홍길동", Phone: "021234567", Region: "서울",
	}, Submission{})
	if !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestCreateLead_RejectsDuplicatePhone(t *testing.T) {
	bus := &fakeBus{}
	svc := newTestService(&fakeRepo{phoneExists: true}, &fakeAudit{}, bus)

	_, err := svc.CreateLead(context.Background(), transport.CreateLeadRequest{
		Name: "홍길동", Phone: "01012345678", Region: "서울",
	}, Submission{})
	if !apperr.Is(err, apperr.KindAlreadyExists) {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
	if len(bus.events) != 0 {
		t.Fatalf("no event must be published for a rejected submission")
	}
}

func TestDeleteLeads_AuditsBeforeDeleting(t *testing.T) {
	var trace []string
	repo := &fakeRepo{trace: &trace}
	audit := &fakeAudit{trace: &trace}
	svc := newTestService(repo, audit, &fakeBus{})

	id := uuid.New()
	resp, err := svc.DeleteLeads(context.Background(), "ops@example.com", []string{id.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", resp.Deleted)
	}

	if len(trace) != 2 || trace[0] != "audit" || trace[1] != "delete" {
		t.Fatalf("expected audit before delete, got %v", trace)
	}
	if audit.action != ActionDelete || audit.actor != "ops@example.com" {
		t.Fatalf("unexpected audit entry: %q by %q", audit.action, audit.actor)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != id {
		t.Fatalf("unexpected deleted ids: %v", repo.deletedIDs)
	}
}

func TestIncrementDownloads_AuditsBeforeMutation(t *testing.T) {
	var trace []string
	repo := &fakeRepo{trace: &trace}
	audit := &fakeAudit{trace: &trace}
	svc := newTestService(repo, audit, &fakeBus{})

	resp, err := svc.IncrementDownloads(context.Background(), "ops@example.com", []string{uuid.NewString(), uuid.NewString()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Updated != 2 {
		t.Fatalf("expected 2 updated, got %d", resp.Updated)
	}
	if len(trace) != 2 || trace[0] != "audit" || trace[1] != "download" {
		t.Fatalf("expected audit before download, got %v", trace)
	}
	if audit.action != ActionDownload {
		t.Fatalf("expected %q, got %q", ActionDownload, audit.action)
	}
}

func TestDeleteLeads_RejectsBadIDs(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeAudit{}, &fakeBus{})

	if _, err := svc.DeleteLeads(context.Background(), "ops@example.com", nil); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for empty ids, got %v", err)
	}
	if _, err := svc.DeleteLeads(context.Background(), "ops@example.com", []string{"not-a-uuid"}); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument for malformed id, got %v", err)
	}
}

func TestUpdateMemo_AuditsOldAndNewText(t *testing.T) {
	repo := &fakeRepo{}
	audit := &fakeAudit{}
	svc := newTestService(repo, audit, &fakeBus{})

	id := uuid.New()
	if err := svc.UpdateMemo(context.Background(), "ops@example.com", id.String(), "followed up", "initial"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if audit.action != ActionUpdateMemo {
		t.Fatalf("expected %q, got %q", ActionUpdateMemo, audit.action)
	}
	if audit.payload["from"] != "initial" || audit.payload["to"] != "followed up" {
		t.Fatalf("unexpected audit payload: %v", audit.payload)
	}
	if repo.memoID != id || repo.memo != "followed up" {
		t.Fatalf("unexpected memo write: %v %q", repo.memoID, repo.memo)
	}
}

func TestSetStatus_RejectsUnknownField(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeAudit{}, &fakeBus{})

	if err := svc.SetStatus(context.Background(), uuid.NewString(), "memo", true); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestSetStatus_TogglesFlag(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeAudit{}, &fakeBus{})

	id := uuid.New()
	if err := svc.SetStatus(context.Background(), id.String(), "defect", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.flagID != id || repo.flag != repository.FlagDefect || !repo.flagValue {
		t.Fatalf("unexpected flag write: %v %q %v", repo.flagID, repo.flag, repo.flagValue)
	}
}
