// Package directory provides the role directory bounded context: the single
// role-map record and the authorization gate every protected operation
// passes through.
package directory

import (
	"github.com/gin-gonic/gin"

	"leadops_backend/internal/directory/domain"
	"leadops_backend/internal/directory/service"
	"leadops_backend/platform/httpkit"
)

// ContextPrincipalKey is the gin context key holding the authorized principal.
const ContextPrincipalKey = "principal"

// Gate builds per-route authorization middleware backed by the directory
// service. Role resolution happens fresh on every request.
type Gate struct {
	svc *service.Service
}

// NewGate creates an authorization gate.
func NewGate(svc *service.Service) *Gate {
	return &Gate{svc: svc}
}

// RequireRole returns middleware admitting only identities whose resolved
// role is in the allow-list. Unknown role names in the allow-list are a
// wiring bug and panic at startup.
func (g *Gate) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make([]domain.Role, 0, len(roles))
	for _, raw := range roles {
		role, ok := domain.ParseRole(raw)
		if !ok {
			panic("unknown role in allow-list: " + raw)
		}
		allowed = append(allowed, role)
	}

	return func(c *gin.Context) {
		principal, err := g.svc.Authorize(c.Request.Context(), httpkit.GetIdentity(c), allowed...)
		if err != nil {
			httpkit.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// PrincipalFrom extracts the authorized principal set by RequireRole.
func PrincipalFrom(c *gin.Context) (service.Principal, bool) {
	value, ok := c.Get(ContextPrincipalKey)
	if !ok {
		return service.Principal{}, false
	}
	principal, ok := value.(service.Principal)
	return principal, ok
}
