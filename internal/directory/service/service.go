// Package service implements role resolution and the authorization gate.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"leadops_backend/internal/directory/domain"
	"leadops_backend/internal/directory/repository"
	"leadops_backend/internal/directory/transport"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/logger"
)

// Principal is the outcome of a successful authorization: the original
// (non-normalized) identifier and the resolved role.
type Principal struct {
	Identifier string
	Role       domain.Role
}

// Service provides role directory lookups and the authorization gate.
// There is no caching: the directory record is read fresh on every check.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new directory service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Authorize resolves the caller's role and checks it against the allow-list.
// Rejects with Unauthenticated when no verified identity is present and with
// PermissionDenied when the resolved role (possibly none) is not allowed.
func (s *Service) Authorize(ctx context.Context, identity httpkit.Identity, allowed ...domain.Role) (Principal, error) {
	if identity == nil || !identity.IsVerified() {
		return Principal{}, apperr.Unauthenticated("authentication required")
	}

	dir, err := s.repo.Get(ctx)
	if err != nil {
		return Principal{}, apperr.Wrap(apperr.KindInternal, "role directory unavailable", err)
	}

	_, role, found := dir.ResolveRole(identity.Identifier())

	for _, candidate := range allowed {
		if found && role == candidate {
			return Principal{Identifier: identity.Identifier(), Role: role}, nil
		}
	}

	resolved := "none"
	if found {
		resolved = role.String()
	}
	required := roleStrings(allowed)
	s.log.AuthzDenied(identity.Identifier(), resolved, required)

	return Principal{}, apperr.PermissionDenied(
		fmt.Sprintf("permission denied: your role is %q, required one of: %s", resolved, strings.Join(required, ", ")),
	).WithDetails(transport.PermissionDeniedDetails{Role: resolved, Required: required})
}

// ResolveRole performs identity verification and lookup only, with no
// allow-list check, so a client can bootstrap its UI state.
func (s *Service) ResolveRole(ctx context.Context, identity httpkit.Identity) (transport.ResolveRoleResponse, error) {
	if identity == nil || !identity.IsVerified() {
		return transport.ResolveRoleResponse{}, apperr.Unauthenticated("authentication required")
	}

	dir, err := s.repo.Get(ctx)
	if err != nil {
		return transport.ResolveRoleResponse{}, apperr.Wrap(apperr.KindInternal, "role directory unavailable", err)
	}

	resp := transport.ResolveRoleResponse{Identifier: identity.Identifier()}
	if _, role, found := dir.ResolveRole(identity.Identifier()); found {
		roleStr := role.String()
		resp.Role = &roleStr
	}
	return resp, nil
}

// ListAdmins returns every directory entry with its notification flags.
func (s *Service) ListAdmins(ctx context.Context) ([]transport.AdminEntry, error) {
	dir, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "role directory unavailable", err)
	}

	entries := make([]transport.AdminEntry, 0, len(dir.Roles))
	for identifier, role := range dir.Roles {
		prefs := dir.PrefsFor(identifier)
		entries = append(entries, transport.AdminEntry{
			Identifier:           identifier,
			Role:                 role.String(),
			NotifyOnNewLead:      prefs.NewLeadEnabled(),
			NotifyOnDailySummary: prefs.DailySummaryEnabled(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return domain.NormalizeIdentifier(entries[i].Identifier) < domain.NormalizeIdentifier(entries[j].Identifier)
	})
	return entries, nil
}

// SetRole grants an assignable role to an identifier.
func (s *Service) SetRole(ctx context.Context, identifier, rawRole string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return apperr.InvalidArgument("identifier is required")
	}

	role, ok := domain.ParseRole(rawRole)
	if !ok || !role.Assignable() {
		return apperr.InvalidArgument(fmt.Sprintf("role must be one of: %s", strings.Join(roleStrings(domain.AssignableRoles), ", ")))
	}

	if err := s.repo.SetRole(ctx, identifier, role); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to set role", err)
	}
	return nil
}

// RemoveRole deletes an identifier's directory entry. The stored key is
// resolved under the same normalization as authorization so the caller can
// pass any casing.
func (s *Service) RemoveRole(ctx context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return apperr.InvalidArgument("identifier is required")
	}

	dir, err := s.repo.Get(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "role directory unavailable", err)
	}

	storedKey, _, found := dir.ResolveRole(identifier)
	if !found {
		return apperr.NotFound("no directory entry for identifier")
	}

	if err := s.repo.RemoveRole(ctx, storedKey); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to remove role", err)
	}
	return nil
}

// SetNotificationPref flips one notification flag for an identifier.
func (s *Service) SetNotificationPref(ctx context.Context, identifier, field string, value bool) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return apperr.InvalidArgument("identifier is required")
	}
	if field != transport.PrefNewLead && field != transport.PrefDailySummary {
		return apperr.InvalidArgument("unknown notification field")
	}

	if err := s.repo.SetNotificationPref(ctx, identifier, field, value); err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to set notification pref", err)
	}
	return nil
}

// NotificationPref selects which flag Recipients filters on.
type NotificationPref int

const (
	// PrefOnNewLead selects recipients of new-lead notifications.
	PrefOnNewLead NotificationPref = iota
	// PrefOnDailySummary selects recipients of the daily summary.
	PrefOnDailySummary
)

// Recipients lists identifiers whose given notification flag is enabled.
// Flags default to enabled when never set.
func (s *Service) Recipients(ctx context.Context, pref NotificationPref) ([]string, error) {
	dir, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("role directory unavailable: %w", err)
	}

	recipients := make([]string, 0, len(dir.Roles))
	for identifier := range dir.Roles {
		prefs := dir.PrefsFor(identifier)
		switch pref {
		case PrefOnNewLead:
			if prefs.NewLeadEnabled() {
				recipients = append(recipients, identifier)
			}
		case PrefOnDailySummary:
			if prefs.DailySummaryEnabled() {
				recipients = append(recipients, identifier)
			}
		}
	}
	sort.Strings(recipients)
	return recipients, nil
}

func roleStrings(roles []domain.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}
