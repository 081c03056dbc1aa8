// Package http provides HTTP server infrastructure including the Module interface
// that all domain modules must implement for route registration.
package http

import (
	"leadops_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group with identity extraction applied.
	V1 *gin.RouterGroup
	// Public is the unauthenticated route group for inbound submissions.
	Public *gin.RouterGroup
	// RequireRole returns middleware that authorizes the verified identity
	// against an allow-list of roles via the role directory. Provided by the
	// directory module and resolved fresh on every call.
	RequireRole func(roles ...string) gin.HandlerFunc
	// SubmissionRateLimiter is the stricter limiter for public submission routes.
	SubmissionRateLimiter *httpkit.SubmissionRateLimiter
}
