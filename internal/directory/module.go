package directory

import (
	"leadops_backend/internal/directory/domain"
	"leadops_backend/internal/directory/handler"
	"leadops_backend/internal/directory/repository"
	"leadops_backend/internal/directory/service"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the directory bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	gate    *Gate
}

// NewModule creates and initializes the directory module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		gate:    NewGate(svc),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "directory"
}

// Service returns the service layer for external use (notification fan-out).
func (m *Module) Service() *service.Service {
	return m.service
}

// Gate returns the authorization gate for router wiring.
func (m *Module) Gate() *Gate {
	return m.gate
}

// RegisterRoutes mounts directory routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/directory")

	// Any verified identity may bootstrap its role; the gate is not applied.
	group.GET("/me", m.handler.ResolveMyRole)

	group.GET("/admins",
		ctx.RequireRole(domain.RoleAdmin.String(), domain.RoleSuper.String()),
		m.handler.ListAdmins)

	superOnly := ctx.RequireRole(domain.RoleSuper.String())
	group.POST("/roles", superOnly, m.handler.SetRole)
	group.DELETE("/roles", superOnly, m.handler.RemoveRole)
	group.PUT("/notifications", superOnly, m.handler.SetNotificationPref)
}

var _ apphttp.Module = (*Module)(nil)
