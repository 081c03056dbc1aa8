package domain

import "testing"

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier("  Ops@Example.COM "); got != "ops@example.com" {
		t.Fatalf("expected ops@example.com, got %q", got)
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	if got := SanitizeIdentifier("ops@example.com"); got != "ops@example_com" {
		t.Fatalf("expected ops@example_com, got %q", got)
	}
}

func TestResolveRole_CaseInsensitiveMatch(t *testing.T) {
	dir := Directory{
		Roles: map[string]Role{
			"Ops@Example.com": RoleAdmin,
		},
	}

	storedKey, role, ok := dir.ResolveRole("  ops@example.COM ")
	if !ok {
		t.Fatalf("expected a match")
	}
	if storedKey != "Ops@Example.com" {
		t.Fatalf("expected original stored key, got %q", storedKey)
	}
	if role != RoleAdmin {
		t.Fatalf("expected admin, got %q", role)
	}
}

func TestResolveRole_NoMatch(t *testing.T) {
	dir := Directory{Roles: map[string]Role{"a@b.com": RoleUser}}

	if _, _, ok := dir.ResolveRole("other@b.com"); ok {
		t.Fatalf("expected no match")
	}
}

func TestNotificationPrefs_DefaultEnabled(t *testing.T) {
	var prefs NotificationPrefs
	if !prefs.NewLeadEnabled() {
		t.Fatalf("expected new-lead mail enabled by default")
	}
	if !prefs.DailySummaryEnabled() {
		t.Fatalf("expected daily summary enabled by default")
	}

	off := false
	prefs.OnNewLead = &off
	if prefs.NewLeadEnabled() {
		t.Fatalf("expected new-lead mail disabled")
	}
	if !prefs.DailySummaryEnabled() {
		t.Fatalf("disabling one flag must not affect the other")
	}
}

func TestPrefsFor_UsesSanitizedKey(t *testing.T) {
	off := false
	dir := Directory{
		Notifications: map[string]NotificationPrefs{
			"ops@example_com": {OnDailySummary: &off},
		},
	}

	prefs := dir.PrefsFor("ops@example.com")
	if prefs.DailySummaryEnabled() {
		t.Fatalf("expected daily summary disabled via sanitized key")
	}
}

func TestParseRole(t *testing.T) {
	if _, ok := ParseRole("admin"); !ok {
		t.Fatalf("expected admin to parse")
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatalf("expected unknown role to be rejected")
	}
}

func TestAssignableRoles_ExcludeSuper(t *testing.T) {
	if RoleSuper.Assignable() {
		t.Fatalf("super must not be assignable through the API")
	}
	if !RoleAdmin.Assignable() || !RoleUser.Assignable() {
		t.Fatalf("admin and user must be assignable")
	}
}
