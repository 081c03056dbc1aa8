package domain

import "strings"

// Directory is the single versioned record mapping principal identifiers to
// roles plus per-principal notification flags. Stored identifier keys are not
// guaranteed normalized; all matching goes through NormalizeIdentifier.
type Directory struct {
	Roles         map[string]Role
	Notifications map[string]NotificationPrefs
	Version       int64
}

// NotificationPrefs carries a principal's notification flags. A nil field
// means the flag was never set and defaults to enabled.
type NotificationPrefs struct {
	OnNewLead      *bool `json:"notifyOnNewLead,omitempty"`
	OnDailySummary *bool `json:"notifyOnDailySummary,omitempty"`
}

// NewLeadEnabled reports whether the principal receives new-lead mail.
func (p NotificationPrefs) NewLeadEnabled() bool {
	return p.OnNewLead == nil || *p.OnNewLead
}

// DailySummaryEnabled reports whether the principal receives the daily summary.
func (p NotificationPrefs) DailySummaryEnabled() bool {
	return p.OnDailySummary == nil || *p.OnDailySummary
}

// NormalizeIdentifier produces the canonical comparison form of an
// identifier: trimmed and lowercased.
func NormalizeIdentifier(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// SanitizeIdentifier produces the notification map key for an identifier.
// Dots are replaced because the original store disallowed them in field paths;
// the convention is kept so existing records stay addressable.
func SanitizeIdentifier(identifier string) string {
	return strings.ReplaceAll(identifier, ".", "_")
}

// ResolveRole scans the role map for an entry matching the identifier under
// case-insensitive, whitespace-trimmed comparison. With duplicate keys that
// normalize identically, the last write wins map semantics of the backing
// store apply; the scan returns the first match it encounters.
func (d Directory) ResolveRole(identifier string) (storedKey string, role Role, ok bool) {
	normalized := NormalizeIdentifier(identifier)
	for key, r := range d.Roles {
		if NormalizeIdentifier(key) == normalized {
			return key, r, true
		}
	}
	return "", "", false
}

// PrefsFor returns the notification prefs for an identifier, honoring the
// sanitized-key convention.
func (d Directory) PrefsFor(identifier string) NotificationPrefs {
	return d.Notifications[SanitizeIdentifier(identifier)]
}
