// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"github.com/gin-gonic/gin"
)

// Identity represents the caller's verified identity as asserted by the
// external identity provider. No further trust is placed in it: role
// resolution happens against the role directory on every call.
type Identity interface {
	// Identifier returns the verified email-equivalent identifier.
	Identifier() string
	// IsVerified returns true if the identity provider verified the caller.
	IsVerified() bool
}

type identity struct {
	identifier string
	verified   bool
}

func (i *identity) Identifier() string { return i.identifier }
func (i *identity) IsVerified() bool   { return i.verified }

// Anonymous returns an unverified identity.
func Anonymous() Identity {
	return &identity{}
}

// Verified returns a verified identity for the given identifier.
func Verified(identifier string) Identity {
	return &identity{identifier: identifier, verified: true}
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unverified identity if no token was presented.
func GetIdentity(c *gin.Context) Identity {
	value, ok := c.Get(ContextIdentifierKey)
	if !ok {
		return Anonymous()
	}

	identifier, ok := value.(string)
	if !ok || identifier == "" {
		return Anonymous()
	}

	return Verified(identifier)
}
