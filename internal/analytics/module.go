// Package analytics is the reporting bounded context.
package analytics

import (
	"time"

	adspendrepo "leadops_backend/internal/adspend/repository"
	"leadops_backend/internal/analytics/handler"
	"leadops_backend/internal/analytics/service"
	"leadops_backend/internal/directory/domain"
	apphttp "leadops_backend/internal/http"
	leadsrepo "leadops_backend/internal/leads/repository"
	settlementrepo "leadops_backend/internal/settlement/repository"
	"leadops_backend/platform/logger"
)

// Module is the analytics bounded context module implementing http.Module.
// It owns no tables of its own; it reads through the other modules'
// repositories.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the analytics module.
func NewModule(leads leadsrepo.Repository, spend adspendrepo.Repository, settlement settlementrepo.Repository, loc *time.Location, trendDays int, log *logger.Logger) *Module {
	svc := service.New(leads, spend, settlement, loc, trendDays, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts analytics routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/analytics")

	group.GET("/dashboard",
		ctx.RequireRole(domain.RoleUser.String(), domain.RoleAdmin.String(), domain.RoleSuper.String()),
		m.handler.DashboardStats)

	group.GET("/roas",
		ctx.RequireRole(domain.RoleAdmin.String(), domain.RoleSuper.String()),
		m.handler.ROASReport)
}

var _ apphttp.Module = (*Module)(nil)
