// Package domain holds the role directory's core types.
package domain

import "strings"

// Role is the closed set of roles a principal can hold, ordered
// super > admin > user. Anything else is rejected at the boundary.
type Role string

const (
	RoleSuper Role = "super"
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// String returns the role's wire representation.
func (r Role) String() string { return string(r) }

// ParseRole validates a caller-supplied role string against the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(raw)) {
	case RoleSuper:
		return RoleSuper, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// AssignableRoles are the roles grantable through the API. Super is
// provisioned out of band, never self-served.
var AssignableRoles = []Role{RoleAdmin, RoleUser}

// Assignable reports whether the role may be granted through setRole.
func (r Role) Assignable() bool {
	for _, candidate := range AssignableRoles {
		if r == candidate {
			return true
		}
	}
	return false
}
