// Package settlement is the partner settlement bounded context.
package settlement

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadops_backend/internal/directory/domain"
	apphttp "leadops_backend/internal/http"
	leadsrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/settlement/handler"
	"leadops_backend/internal/settlement/repository"
	"leadops_backend/internal/settlement/service"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the settlement bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	service    *service.Service
	repository repository.Repository
}

// NewModule creates and initializes the settlement module.
func NewModule(pool *pgxpool.Pool, leads leadsrepo.Repository, val *validator.Validator, loc *time.Location, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, leads, loc, log)

	return &Module{
		handler:    handler.New(svc, val),
		service:    svc,
		repository: repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "settlement"
}

// Repository exposes the unit cost configuration to reporting modules.
func (m *Module) Repository() repository.Repository {
	return m.repository
}

// RegisterRoutes mounts settlement routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/settlement")

	staff := ctx.RequireRole(domain.RoleAdmin.String(), domain.RoleSuper.String())
	group.GET("", staff, m.handler.Calculate)
	group.GET("/config", staff, m.handler.GetConfig)

	group.PUT("/config",
		ctx.RequireRole(domain.RoleSuper.String()),
		m.handler.SetCost)
}

var _ apphttp.Module = (*Module)(nil)
