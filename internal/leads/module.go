// Package leads is the lead intake and triage bounded context.
package leads

import (
	"leadops_backend/internal/directory/domain"
	"leadops_backend/internal/events"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/internal/leads/handler"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/service"
	"leadops_backend/platform/geo"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository repository.Repository
}

// NewModule creates and initializes the leads module. The repository is
// injected because the audit module denormalizes subject leads through the
// same instance; the audit recorder is injected so the trail stays
// append-only behind its own module.
func NewModule(repo repository.Repository, val *validator.Validator, log *logger.Logger, audit service.AuditRecorder, resolver geo.Resolver, bus events.Bus) *Module {
	svc := service.New(repo, audit, resolver, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler:    h,
		service:    svc,
		repository: repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository exposes the lead query surface to reporting modules.
func (m *Module) Repository() repository.Repository {
	return m.repository
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := ctx.Public.Group("/leads")
	public.Use(ctx.SubmissionRateLimiter.RateLimit())
	public.POST("", m.handler.Create)
	public.GET("/postback", m.handler.Postback)
	public.POST("/postback", m.handler.Postback)

	group := ctx.V1.Group("/leads")

	staff := ctx.RequireRole(domain.RoleUser.String(), domain.RoleAdmin.String(), domain.RoleSuper.String())
	group.POST("/downloads", staff, m.handler.MarkDownloaded)
	group.PUT("/memo", staff, m.handler.UpdateMemo)
	group.PUT("/status", staff, m.handler.SetStatus)
	group.DELETE("", staff, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
