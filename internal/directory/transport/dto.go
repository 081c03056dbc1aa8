// Package transport defines the directory module's request/response shapes.
package transport

// Notification pref field names accepted by setNotificationPrefs.
const (
	PrefNewLead      = "notifyOnNewLead"
	PrefDailySummary = "notifyOnDailySummary"
)

// ResolveRoleResponse is the payload of resolveMyRole. Role is null when the
// verified identity has no directory entry.
type ResolveRoleResponse struct {
	Identifier string  `json:"identifier"`
	Role       *string `json:"role"`
}

// AdminEntry is one row of listAdmins.
type AdminEntry struct {
	Identifier           string `json:"identifier"`
	Role                 string `json:"role"`
	NotifyOnNewLead      bool   `json:"notifyOnNewLead"`
	NotifyOnDailySummary bool   `json:"notifyOnDailySummary"`
}

// PermissionDeniedDetails is attached to permission-denied errors so callers
// can see the resolved role and the required set.
type PermissionDeniedDetails struct {
	Role     string   `json:"role"`
	Required []string `json:"required"`
}

// SetRoleRequest grants or updates a role.
type SetRoleRequest struct {
	Identifier string `json:"identifier" binding:"required" validate:"required,email"`
	Role       string `json:"role" binding:"required" validate:"required"`
}

// RemoveRoleRequest revokes a directory entry.
type RemoveRoleRequest struct {
	Identifier string `json:"identifier" binding:"required" validate:"required"`
}

// SetNotificationPrefRequest flips one notification flag.
type SetNotificationPrefRequest struct {
	Identifier string `json:"identifier" binding:"required" validate:"required"`
	Field      string `json:"field" binding:"required" validate:"required"`
	Value      *bool  `json:"value" binding:"required" validate:"required"`
}

// Ack is the generic mutation acknowledgement.
type Ack struct {
	OK bool `json:"ok"`
}
