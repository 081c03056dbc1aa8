package service

import (
	"context"
	"testing"

	"leadops_backend/internal/directory/domain"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/logger"
)

type fakeRepo struct {
	dir domain.Directory

	setIdentifier string
	setRole       domain.Role
	removedKey    string
}

func (f *fakeRepo) Get(ctx context.Context) (domain.Directory, error) {
	return f.dir, nil
}

func (f *fakeRepo) SetRole(ctx context.Context, identifier string, role domain.Role) error {
	f.setIdentifier = identifier
	f.setRole = role
	return nil
}

func (f *fakeRepo) RemoveRole(ctx context.Context, storedKey string) error {
	f.removedKey = storedKey
	return nil
}

func (f *fakeRepo) SetNotificationPref(ctx context.Context, identifier, field string, value bool) error {
	return nil
}

func newTestService(dir domain.Directory) (*Service, *fakeRepo) {
	repo := &fakeRepo{dir: dir}
	return New(repo, logger.New("development")), repo
}

func TestAuthorize_RejectsAnonymous(t *testing.T) {
	svc, _ := newTestService(domain.Directory{})

	_, err := svc.Authorize(context.Background(), httpkit.Anonymous(), domain.RoleUser)
	if !apperr.Is(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestAuthorize_AllowsMatchingRole(t *testing.T) {
	svc, _ := newTestService(domain.Directory{
		Roles: map[string]domain.Role{"Ops@Example.com": domain.RoleAdmin},
	})

	principal, err := svc.Authorize(context.Background(), httpkit.Verified("ops@example.com"), domain.RoleAdmin, domain.RoleSuper)
	if err != nil {
		t.Fatalf("expected authorization to pass, got %v", err)
	}
	if principal.Role != domain.RoleAdmin {
		t.Fatalf("expected admin principal, got %q", principal.Role)
	}
	if principal.Identifier != "ops@example.com" {
		t.Fatalf("expected caller identifier preserved, got %q", principal.Identifier)
	}
}

func TestAuthorize_DeniesInsufficientRole(t *testing.T) {
	svc, _ := newTestService(domain.Directory{
		Roles: map[string]domain.Role{"ops@example.com": domain.RoleUser},
	})

	_, err := svc.Authorize(context.Background(), httpkit.Verified("ops@example.com"), domain.RoleSuper)
	if !apperr.Is(err, apperr.KindPermissionDenied) {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
}

func TestAuthorize_DeniesUnknownIdentifier(t *testing.T) {
	svc, _ := newTestService(domain.Directory{})

	_, err := svc.Authorize(context.Background(), httpkit.Verified("stranger@example.com"), domain.RoleUser)
	if !apperr.Is(err, apperr.KindPermissionDenied) {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
}

func TestResolveRole_ReturnsNilRoleForUnknown(t *testing.T) {
	svc, _ := newTestService(domain.Directory{})

	resp, err := svc.ResolveRole(context.Background(), httpkit.Verified("stranger@example.com"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Role != nil {
		t.Fatalf("expected nil role, got %q", *resp.Role)
	}
}

func TestSetRole_RejectsSuper(t *testing.T) {
	svc, repo := newTestService(domain.Directory{})

	if err := svc.SetRole(context.Background(), "new@example.com", "super"); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if repo.setIdentifier != "" {
		t.Fatalf("repository must not be written on rejection")
	}
}

func TestSetRole_GrantsAssignable(t *testing.T) {
	svc, repo := newTestService(domain.Directory{})

	if err := svc.SetRole(context.Background(), "new@example.com", "user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.setIdentifier != "new@example.com" || repo.setRole != domain.RoleUser {
		t.Fatalf("unexpected write: %q %q", repo.setIdentifier, repo.setRole)
	}
}

func TestRemoveRole_ResolvesStoredKey(t *testing.T) {
	svc, repo := newTestService(domain.Directory{
		Roles: map[string]domain.Role{"Ops@Example.com": domain.RoleAdmin},
	})

	if err := svc.RemoveRole(context.Background(), "ops@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.removedKey != "Ops@Example.com" {
		t.Fatalf("expected removal by stored key, got %q", repo.removedKey)
	}
}

func TestRemoveRole_UnknownIdentifier(t *testing.T) {
	svc, _ := newTestService(domain.Directory{})

	if err := svc.RemoveRole(context.Background(), "ghost@example.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestRecipients_HonorsDisabledFlag(t *testing.T) {
	off := false
	svc, _ := newTestService(domain.Directory{
		Roles: map[string]domain.Role{
			"a@example.com": domain.RoleAdmin,
			"b@example.com": domain.RoleUser,
		},
		Notifications: map[string]domain.NotificationPrefs{
			"b@example_com": {OnNewLead: &off},
		},
	})

	recipients, err := svc.Recipients(context.Background(), PrefOnNewLead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipients) != 1 || recipients[0] != "a@example.com" {
		t.Fatalf("expected [a@example.com], got %v", recipients)
	}

	// The daily summary flag was never set for b; it stays enabled.
	recipients, err = svc.Recipients(context.Background(), PrefOnDailySummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recipients) != 2 {
		t.Fatalf("expected both recipients, got %v", recipients)
	}
}
