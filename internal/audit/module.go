// Package audit is the append-only audit trail bounded context.
package audit

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/internal/audit/handler"
	"leadops_backend/internal/audit/repository"
	"leadops_backend/internal/audit/service"
	"leadops_backend/internal/directory/domain"
	apphttp "leadops_backend/internal/http"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/platform/logger"
)

// Module is the audit bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the audit module.
func NewModule(pool *pgxpool.Pool, leads leadsrepo.Repository, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, log)

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// Service returns the service layer; the leads module records through it.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts audit routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/audit",
		ctx.RequireRole(domain.RoleSuper.String()),
		m.handler.List)
}

var _ apphttp.Module = (*Module)(nil)
